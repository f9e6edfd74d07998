package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/chloe-ha/menu-cms/internal/gallery"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	apiURL := flag.String("api", "http://localhost:8080", "menu-cms API base URL")
	publicBase := flag.String("public-base", "http://localhost:9000/menucms", "public object store base URL")
	restaurantID := flag.String("restaurant", "", "restaurant record ID (required)")
	email := flag.String("email", os.Getenv("MENUCMS_ADMIN_EMAIL"), "admin email")
	password := flag.String("password", os.Getenv("MENUCMS_ADMIN_PASSWORD"), "admin password")
	flag.Parse()

	if *restaurantID == "" {
		log.Fatal("the -restaurant flag is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := gallery.NewClient(*apiURL, *publicBase)
	if err := client.Login(ctx, *email, *password); err != nil {
		log.Fatalf("login: %v", err)
	}

	session := gallery.NewSession(client, *restaurantID, gallery.PreviewFromPath)
	if err := session.Load(ctx); err != nil {
		log.Fatalf("load gallery: %v", err)
	}
	defer session.Discard()

	fmt.Println("gallery editor. commands: ls | add <path>... | rm <index> | mv <from> <to> | save | quit")
	printList(session, client.PublicBase())

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "ls":
			printList(session, client.PublicBase())
		case "add":
			if len(fields) < 2 {
				fmt.Println("usage: add <path>...")
				continue
			}
			for _, path := range fields[1:] {
				if _, err := os.Stat(path); err != nil {
					fmt.Printf("skipping %s: %v\n", path, err)
					continue
				}
				session.List().AddLocal(gallery.NewDiskFile(path))
			}
			printList(session, client.PublicBase())
		case "rm":
			idx, err := parseIndex(fields, 1, session.List().Len())
			if err != nil {
				fmt.Println(err)
				continue
			}
			session.List().Remove(session.List().Items()[idx].ID())
			printList(session, client.PublicBase())
		case "mv":
			from, err := parseIndex(fields, 1, session.List().Len())
			if err != nil {
				fmt.Println(err)
				continue
			}
			to, err := parseIndex(fields, 2, session.List().Len())
			if err != nil {
				fmt.Println(err)
				continue
			}
			session.List().Reorder(from, to)
			printList(session, client.PublicBase())
		case "save":
			if err := session.Commit(ctx); err != nil {
				fmt.Printf("save failed: %v\n", err)
				continue
			}
			fmt.Println("saved")
			printList(session, client.PublicBase())
		case "quit", "exit":
			return
		default:
			fmt.Printf("unknown command %q\n", fields[0])
		}
	}
}

func parseIndex(fields []string, pos, length int) (int, error) {
	if len(fields) <= pos {
		return 0, fmt.Errorf("missing index argument")
	}
	idx, err := strconv.Atoi(fields[pos])
	if err != nil || idx < 0 || idx >= length {
		return 0, fmt.Errorf("invalid index %q", fields[pos])
	}
	return idx, nil
}

func printList(session *gallery.Session, publicBase string) {
	items := session.List().Items()
	if len(items) == 0 {
		fmt.Println("  (empty gallery)")
		return
	}
	for i, it := range items {
		marker := " "
		switch it.Kind() {
		case gallery.KindLocal:
			marker = "+"
		case gallery.KindPendingDelete:
			marker = "x"
		case gallery.KindRemote:
		}
		fmt.Printf("  [%d]%s %s\n", i, marker, it.DisplayURL(publicBase))
	}
}
