package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"attendlog.com/attendlog/config"
	"attendlog.com/attendlog/security"
)

// Mints a session token without going through /login, for curl sessions and
// smoke tests.
func main() {
	configPath := flag.String("config", "", "path to config file")
	role := flag.String("role", "admin", "role claim for the token")
	hours := flag.Int("hours", 1, "token lifetime in hours")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	token, err := security.CreateSessionToken([]byte(cfg.Auth.Secret), *role, time.Duration(*hours)*time.Hour)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(token)
}
