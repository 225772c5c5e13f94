package cli

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/avlasov/fileshare/internal/common"
)

func (a *App) list(ctx context.Context) {
	if !a.isLoggedIn() {
		fmt.Println("Please login first")
		return
	}

	files, err := a.api.ListFiles(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	if len(files) == 0 {
		fmt.Println("No files visible yet")
		return
	}

	for _, f := range files {
		fmt.Printf("%s  %-20s %-8s %s\n", f.ID, f.Name, f.Visibility, f.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func (a *App) show(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: show <id>")
		return
	}

	f, err := a.api.GetFile(ctx, args[0])
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			fmt.Println("No such file")
		case errors.Is(err, common.ErrorForbidden):
			fmt.Println("This file is private")
		default:
			log.Printf("error: %v", err)
		}
		return
	}

	fmt.Printf("%s (%s, %s)\n", f.Name, f.Visibility, f.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Println(f.Content)
}

func (a *App) add(ctx context.Context) {
	if !a.isLoggedIn() {
		fmt.Println("Please login first")
		return
	}

	name, err := GetSimpleText(a.reader, "-Enter file name")
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	content, err := GetMultiline(a.reader, "-Enter content (empty line to finish)")
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	visibility, err := GetSimpleText(a.reader, "-Visibility (private/public)")
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	f, err := a.api.CreateFile(ctx, name, content, visibility)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			fmt.Println("Invalid input: name and content must be non-empty, visibility private or public")
		} else {
			log.Printf("error: %v", err)
		}
		return
	}

	fmt.Printf("Created %s\n", f.ID)
}

func (a *App) delete(ctx context.Context, args []string) {
	if !a.isLoggedIn() {
		fmt.Println("Please login first")
		return
	}
	if len(args) != 1 {
		fmt.Println("Usage: delete <id>")
		return
	}

	err := a.api.DeleteFile(ctx, args[0])
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			fmt.Println("No such file")
		case errors.Is(err, common.ErrorForbidden):
			fmt.Println("Only the owner can delete a file")
		default:
			log.Printf("error: %v", err)
		}
		return
	}

	fmt.Println("Deleted")
}
