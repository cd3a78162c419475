package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"github.com/example/miniblog/internal/client"
	"github.com/example/miniblog/internal/config"
	"github.com/example/miniblog/internal/ui"
)

var (
	titleColor  = color.New(color.FgCyan, color.Bold)
	authorColor = color.New(color.FgGreen)
	errorColor  = color.New(color.FgRed)
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadClient()
	api := client.New(cfg)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch os.Args[1] {
	case "list":
		st := refresh(ctx, api, ui.State{})
		render(st)
	case "create":
		fs := flag.NewFlagSet("create", flag.ExitOnError)
		title := fs.String("title", "", "post title (required)")
		content := fs.String("content", "", "post content (required)")
		author := fs.String("author", "", "post author")
		_ = fs.Parse(os.Args[2:])

		st := ui.Apply(ui.State{}, ui.EditForm{Title: *title, Content: *content, Author: *author})
		st = submit(ctx, api, st)
		st = refresh(ctx, api, st)
		render(st)
		if st.LastError != "" {
			os.Exit(1)
		}
	default:
		usage()
		os.Exit(2)
	}
}

func refresh(ctx context.Context, api *client.Client, st ui.State) ui.State {
	res := api.ListPosts(ctx)
	if !res.OK() {
		return ui.Apply(st, ui.LoadFailed{Err: res.Err.Error()})
	}
	return ui.Apply(st, ui.LoadSucceeded{Posts: res.Posts})
}

func submit(ctx context.Context, api *client.Client, st ui.State) ui.State {
	st = ui.Apply(st, ui.SubmitStarted{})
	res := api.CreatePost(ctx, st.Title, st.Content, st.Author)
	if !res.OK() {
		return ui.Apply(st, ui.SubmitFailed{Err: res.Err.Error()})
	}
	return ui.Apply(st, ui.SubmitSucceeded{})
}

func render(st ui.State) {
	if st.LastError != "" {
		errorColor.Fprintf(os.Stderr, "error: %s\n", st.LastError)
	}
	if len(st.Posts) == 0 {
		fmt.Println("no posts yet")
		return
	}
	for _, p := range st.Posts {
		author := p.Author
		if author == "" {
			author = "anonymous"
		}
		titleColor.Printf("%s\n", p.Title)
		fmt.Println(p.Content)
		authorColor.Printf("By %s\n\n", author)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: blogcli list")
	fmt.Fprintln(os.Stderr, "       blogcli create -title <t> -content <c> [-author <a>]")
}
