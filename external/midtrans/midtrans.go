package midtrans

import (
	"crypto/sha512"
	"encoding/hex"
	"os"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

// NewSnapClient builds the Snap client from MIDTRANS_SERVER_KEY; set
// MIDTRANS_ENV=production to leave the sandbox.
func NewSnapClient() *snap.Client {
	var client snap.Client

	env := midtrans.Sandbox
	if os.Getenv("MIDTRANS_ENV") == "production" {
		env = midtrans.Production
	}

	client.New(os.Getenv("MIDTRANS_SERVER_KEY"), env)

	return &client
}

// VerifySignature checks the webhook signature: sha512 over
// orderID + statusCode + grossAmount + serverKey.
func VerifySignature(orderID, statusCode, grossAmount, signature, serverKey string) bool {
	raw := orderID + statusCode + grossAmount + serverKey
	hash := sha512.Sum512([]byte(raw))
	expected := hex.EncodeToString(hash[:])

	return expected == signature
}
