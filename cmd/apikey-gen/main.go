package main

import (
	"flag"
	"fmt"
	"log"

	"forgebase.backend/pkg/apikey"
)

// apikey-gen mints API key secrets for manual provisioning. Keys minted
// here still have to be inserted through the dashboard API to exist in
// the store; this tool only produces well-formed secrets.
func main() {
	env := flag.String("env", apikey.EnvLive, "environment tag: live or test")
	byteLen := flag.Int("byte-len", apikey.DefaultByteLength, "random byte length of the secret body")
	count := flag.Int("count", 1, "number of keys to generate")
	flag.Parse()

	if *env != apikey.EnvLive && *env != apikey.EnvTest {
		log.Fatalf("invalid env: %s (allowed: live, test)", *env)
	}
	if *count <= 0 {
		log.Fatalf("invalid count: %d", *count)
	}

	for i := 0; i < *count; i++ {
		secret, err := apikey.Generate(*env, *byteLen)
		if err != nil {
			log.Fatalf("failed to generate key: %v", err)
		}
		fmt.Println(secret)
	}
}
