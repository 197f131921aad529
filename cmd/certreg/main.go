package main

import "github.com/academic-credentials-network/certreg/internal/cli"

// certreg is the client CLI for the certificate registry: it computes local
// fingerprints and issues or verifies certificates against a running server.
func main() {
	cli.Execute()
}
