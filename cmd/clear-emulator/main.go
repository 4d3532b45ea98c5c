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
	if defaultEmulator == "" {
		defaultEmulator = "localhost:9099"
	}

	emulator := flag.String("emulator", defaultEmulator, "Emulator host (env FIREBASE_AUTH_EMULATOR_HOST)")
	showCodes := flag.Bool("show-codes", false, "Print pending OOB and SMS codes instead of clearing accounts")
	timeout := flag.Duration("timeout", 10*time.Second, "Overall timeout")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	auth := fireauth.NewEmulatorApp("http://" + *emulator).Auth()

	if *showCodes {
		printPendingCodes(ctx, auth)
		return
	}

	if err := auth.ClearAllUsers(ctx); err != nil {
		log.Fatalf("clear accounts: %v", err)
	}
	fmt.Println("all emulator accounts cleared")
}

func printPendingCodes(ctx context.Context, auth *fireauth.Auth) {
	oobCodes, err := auth.OobCodes(ctx)
	if err != nil {
		log.Fatalf("fetch oob codes: %v", err)
	}
	for _, code := range oobCodes {
		fmt.Printf("oob\t%s\t%s\t%s\n", code.RequestType, code.Email, code.OobCode)
	}

	smsCodes, err := auth.SmsVerificationCodes(ctx)
	if err != nil {
		log.Fatalf("fetch sms codes: %v", err)
	}
	for _, code := range smsCodes {
		fmt.Printf("sms\t%s\t%s\n", code.PhoneNumber, code.SessionCode)
	}

	if len(oobCodes) == 0 && len(smsCodes) == 0 {
		fmt.Println("no pending codes")
	}
}
