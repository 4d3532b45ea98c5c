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
	var (
		defaultEmulator = os.Getenv("FIREBASE_AUTH_EMULATOR_HOST")
		defaultToken    = os.Getenv("FIREBASE_ID_TOKEN")
	)

	emulator := flag.String("emulator", defaultEmulator, "Emulator host (env FIREBASE_AUTH_EMULATOR_HOST)")
	token := flag.String("token", defaultToken, "Fresh ID token to exchange (env FIREBASE_ID_TOKEN)")
	validFor := flag.Duration("valid-for", time.Hour, "Session cookie lifetime")
	verify := flag.Bool("verify", false, "Verify the minted cookie before printing it")
	timeout := flag.Duration("timeout", 30*time.Second, "Overall timeout")
	flag.Parse()

	if *token == "" {
		flag.Usage()
		log.Fatal("token is required (via flag or FIREBASE_ID_TOKEN)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	app, err := buildApp(ctx, *emulator)
	if err != nil {
		log.Fatalf("create app: %v", err)
	}

	cookie, err := app.Auth().CreateSessionCookie(ctx, *token, *validFor)
	if err != nil {
		log.Fatalf("create session cookie: %v", err)
	}

	if *verify {
		verifier, err := app.SessionCookieVerifier(ctx)
		if err != nil {
			log.Fatalf("create verifier: %v", err)
		}
		verified, err := verifier.VerifyToken(ctx, cookie)
		if err != nil {
			log.Fatalf("cookie does not verify: %v", err)
		}
		log.Printf("cookie verifies for subject %s until %s",
			verified.Claims.Subject, verified.Claims.Expires.Format(time.RFC3339))
	}

	fmt.Println(cookie)
}

func buildApp(ctx context.Context, emulator string) (*fireauth.App, error) {
	if emulator != "" {
		return fireauth.NewEmulatorApp("http://" + emulator), nil
	}
	return fireauth.NewApp(ctx)
}
