package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/bionicotaku/lingo-utils-fireauth"
)

func main() {
	defaultEmulator := os.Getenv("FIREBASE_AUTH_EMULATOR_HOST")

	emulator := flag.String("emulator", defaultEmulator, "Emulator host (env FIREBASE_AUTH_EMULATOR_HOST)")
	email := flag.String("email", "", "Look up a single user by email instead of listing")
	uid := flag.String("uid", "", "Look up a single user by uid instead of listing")
	pageSize := flag.Int("page-size", 50, "Accounts per listing page")
	timeout := flag.Duration("timeout", 30*time.Second, "Overall timeout")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	app, err := buildApp(ctx, *emulator)
	if err != nil {
		log.Fatalf("create app: %v", err)
	}
	auth := app.Auth()

	switch {
	case *email != "":
		lookupUser(ctx, auth, fireauth.ByEmail(*email))
	case *uid != "":
		lookupUser(ctx, auth, fireauth.ByUID(*uid))
	default:
		listUsers(ctx, auth, *pageSize)
	}
}

func buildApp(ctx context.Context, emulator string) (*fireauth.App, error) {
	if emulator != "" {
		return fireauth.NewEmulatorApp("http://" + emulator), nil
	}
	return fireauth.NewApp(ctx)
}

func lookupUser(ctx context.Context, auth *fireauth.Auth, ids fireauth.UserIdentifiers) {
	user, err := auth.GetUser(ctx, ids)
	if err != nil {
		log.Fatalf("lookup failed: %v", err)
	}
	if user == nil {
		log.Fatal("no matching user")
	}
	printUser(*user)
}

func listUsers(ctx context.Context, auth *fireauth.Auth, pageSize int) {
	total := 0
	var page *fireauth.UserPage
	for {
		var err error
		page, err = auth.ListUsers(ctx, pageSize, page)
		if err != nil {
			log.Fatalf("listing failed: %v", err)
		}
		if page == nil {
			break
		}
		for _, user := range page.Users {
			printUser(user)
		}
		total += len(page.Users)
	}
	fmt.Printf("total: %d\n", total)
}

func printUser(user fireauth.User) {
	fmt.Printf("%s\temail=%s verified=%t disabled=%t", user.UID, user.Email, user.EmailVerified, user.Disabled)
	if user.DisplayName != "" {
		fmt.Printf(" name=%q", user.DisplayName)
	}
	if user.CreatedAt != nil {
		fmt.Printf(" created=%s", user.CreatedAt.Format(time.RFC3339))
	}
	if len(user.CustomClaims) > 0 {
		fmt.Printf(" claims=%v", map[string]any(user.CustomClaims))
	}
	fmt.Println()
}
