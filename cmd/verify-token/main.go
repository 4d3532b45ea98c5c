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
		defaultProject  = os.Getenv("GOOGLE_CLOUD_PROJECT")
		defaultEmulator = os.Getenv("FIREBASE_AUTH_EMULATOR_HOST")
		defaultToken    = os.Getenv("FIREBASE_ID_TOKEN")
	)

	project := flag.String("project", defaultProject, "Project id, the expected audience (env GOOGLE_CLOUD_PROJECT)")
	emulator := flag.String("emulator", defaultEmulator, "Emulator host; decode without validation when set (env FIREBASE_AUTH_EMULATOR_HOST)")
	token := flag.String("token", defaultToken, "Encoded token to verify (env FIREBASE_ID_TOKEN)")
	cookie := flag.Bool("session-cookie", false, "Verify as a session cookie instead of an ID token")
	timeout := flag.Duration("timeout", 10*time.Second, "Timeout for the initial key fetch")
	flag.Parse()

	if *project == "" {
		flag.Usage()
		log.Fatal("project is required (via flag or GOOGLE_CLOUD_PROJECT)")
	}
	if *token == "" {
		flag.Usage()
		log.Fatal("token is required (via flag or FIREBASE_ID_TOKEN)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	verifier, err := buildVerifier(ctx, *project, *emulator, *cookie)
	if err != nil {
		log.Fatalf("create verifier: %v", err)
	}

	verified, err := verifier.VerifyToken(ctx, *token)
	if err != nil {
		log.Fatalf("verification failed: %v", err)
	}

	printToken(verified)
}

func buildVerifier(ctx context.Context, project, emulator string, cookie bool) (fireauth.TokenVerifier, error) {
	if emulator != "" {
		return fireauth.NewEmulatedTokenVerifier(project), nil
	}
	cfg := fireauth.VerifierConfig{ProjectID: project}
	if cookie {
		return fireauth.NewSessionCookieVerifier(ctx, cfg)
	}
	return fireauth.NewIDTokenVerifier(ctx, cfg)
}

func printToken(token *fireauth.Token) {
	fmt.Println("== Token Verified ==")
	fmt.Printf("subject   : %s\n", token.Claims.Subject)
	fmt.Printf("audience  : %s\n", token.Claims.Audience)
	fmt.Printf("issuer    : %s\n", token.Claims.Issuer)
	fmt.Printf("issued_at : %s\n", token.Claims.IssuedAt.Format(time.RFC3339))
	fmt.Printf("expires   : %s\n", token.Claims.Expires.Format(time.RFC3339))
	fmt.Printf("key_id    : %s\n", token.Header.KeyID)

	standard := map[string]bool{
		"exp": true, "iat": true, "aud": true, "iss": true, "sub": true, "auth_time": true,
	}
	printed := false
	for name, value := range token.AllClaims {
		if standard[name] {
			continue
		}
		if !printed {
			fmt.Println("claims    :")
			printed = true
		}
		fmt.Printf("  %s: %v\n", name, value)
	}
}
