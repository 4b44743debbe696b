// Command dispute is a small demonstration CLI driving the vendor and
// buyer sides of a precontract: encrypt a file, publish the
// commitment, and let a buyer check that the ciphertext decrypts under
// the key to the advertised description.
package main

import (
	"encoding/hex"
	"log"
	"os"

	"github.com/filebazaar/dispute-core/cmd/config"
	"github.com/filebazaar/dispute-core/diag"
	"github.com/filebazaar/dispute-core/protocol"
)

func main() {
	cfg := config.NewConfig(os.Args...)

	key, err := hex.DecodeString(cfg.KeyHex)
	if err != nil || len(key) != 16 {
		log.Fatalf("dispute: --key must be a 32-character hex string (16 bytes): %v", err)
	}

	switch cfg.Role {
	case "vendor":
		runVendor(cfg, key)
	case "buyer":
		runBuyer(cfg, key)
	default:
		log.Fatalf("dispute: unknown role %q, want \"vendor\" or \"buyer\"", cfg.Role)
	}
}

func runVendor(cfg *config.Config, key []byte) {
	file, err := os.ReadFile(cfg.FilePath)
	if err != nil {
		log.Fatalf("dispute: failed to read file %s: %v", cfg.FilePath, err)
	}

	pre, err := protocol.ComputePrecontractValues(file, key)
	if err != nil {
		log.Fatalf("dispute: failed to build precontract: %v", err)
	}

	if err := os.WriteFile(cfg.CtPath, pre.Ct, 0o644); err != nil {
		log.Fatalf("dispute: failed to write ciphertext to %s: %v", cfg.CtPath, err)
	}

	diag.Info("precontract ready")
	log.Printf("dispute: wrote ciphertext to %s (%d bytes), description=%x, commitment=%x",
		cfg.CtPath, len(pre.Ct), pre.Description, pre.Commitment.C)
}

func runBuyer(cfg *config.Config, key []byte) {
	ct, err := os.ReadFile(cfg.CtPath)
	if err != nil {
		log.Fatalf("dispute: failed to read ciphertext %s: %v", cfg.CtPath, err)
	}

	description, err := hex.DecodeString(cfg.DescriptionHex)
	if err != nil {
		log.Fatalf("dispute: --description must be hex-encoded: %v", err)
	}

	result := protocol.CheckReceivedCtKey(ct, key, description)
	if result.Error != nil {
		log.Fatalf("dispute: failed to check received key: %v", result.Error)
	}

	log.Printf("dispute: key check against advertised description: valid=%v", result.IsValid)
}
