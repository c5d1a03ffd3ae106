package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"apigallery/viewer/internal/container"
	"apigallery/viewer/internal/service"

	log "github.com/sirupsen/logrus"
)

func runGallery(ctx context.Context, app *container.Container, args []string) error {
	flags := flag.NewFlagSet("gallery", flag.ExitOnError)
	page := flags.Int("page", 1, "page to open")
	interactive := flags.Bool("interactive", false, "read n, p, g <page> and q from stdin")
	_ = flags.Parse(args)

	gallery := app.Gallery

	_, err := gallery.LoadPage(ctx, 1)
	if err == nil && *page != 1 {
		_, err = gallery.GoToPage(ctx, *page)
	}
	printGallery(gallery)

	if !*interactive {
		return err
	}

	fmt.Println("commands: n (next), p (previous), g <page>, q (quit)")
	lines := readLines(ctx, os.Stdin)
	for {
		var line string
		select {
		case <-ctx.Done():
			return nil
		case l, ok := <-lines:
			if !ok {
				return nil
			}
			line = l
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "n", "next":
			_, err = gallery.GoToNextPage(ctx)
		case "p", "prev":
			_, err = gallery.GoToPreviousPage(ctx)
		case "g", "goto":
			if len(fields) < 2 {
				fmt.Println("usage: g <page>")
				continue
			}
			n, convErr := strconv.Atoi(fields[1])
			if convErr != nil {
				fmt.Printf("not a page number: %s\n", fields[1])
				continue
			}
			_, err = gallery.GoToPage(ctx, n)
		case "q", "quit":
			return nil
		default:
			fmt.Println("commands: n (next), p (previous), g <page>, q (quit)")
			continue
		}

		// Fetch failures are already part of the rendered view
		if errors.Is(err, service.ErrInvalidPage) {
			fmt.Println(err)
			continue
		}
		printGallery(gallery)
	}
}

func runSearch(ctx context.Context, app *container.Container, args []string) error {
	if len(args) > 0 {
		result, err := app.Searcher.Search(ctx, strings.Join(args, " "))
		if err != nil {
			if errors.Is(err, service.ErrEmptyTerm) {
				return err
			}
			fmt.Println(service.SearchErrorMessage)
			return err
		}
		fmt.Print(service.FormatSearch(service.SearchView{Term: strings.Join(args, " "), Result: result}))
		return nil
	}

	// Each stdin line is a new value of the search box
	lines := readLines(ctx, os.Stdin)
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				app.Searcher.Wait()
				return nil
			}
			app.Searcher.SetTerm(line)
		}
	}
}

func runDog(ctx context.Context, app *container.Container) error {
	view, err := app.Dog.Fetch(ctx)
	fmt.Print(service.FormatDog(view))
	return err
}

func printGallery(gallery *service.Gallery) {
	fmt.Print(service.FormatGallery(gallery.Snapshot(), gallery.Window()))
}

func printSearchView(view service.SearchView) {
	if out := service.FormatSearch(view); out != "" {
		fmt.Print(out)
	}
}

// readLines streams r line by line until EOF or ctx is done
func readLines(ctx context.Context, r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			log.WithError(err).Error("Failed to read from stdin")
		}
	}()
	return lines
}
