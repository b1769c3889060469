package tracking

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/nasim-ferdous/garment-pilot-server/internal/clock"
)

// Prefix brands every tracking id issued by this service.
const Prefix = "PRCL"

// Generator mints buyer-facing tracking ids of the form
// PRCL-YYYYMMDD-XXXXXX, where the date is the current UTC day and the
// suffix is three random bytes in uppercase hex. 48 bits of entropy per
// day makes a collision negligible but not impossible; the order store's
// unique constraint on tracking_id is the correctness backstop.
type Generator struct {
	clock clock.Clock
	rand  io.Reader
}

func NewGenerator(clk clock.Clock) *Generator {
	return &Generator{clock: clk, rand: rand.Reader}
}

// NewGeneratorWithRand allows injecting the entropy source (tests).
func NewGeneratorWithRand(clk clock.Clock, r io.Reader) *Generator {
	return &Generator{clock: clk, rand: r}
}

func (g *Generator) NewID() (string, error) {
	b := make([]byte, 3)
	if _, err := io.ReadFull(g.rand, b); err != nil {
		return "", fmt.Errorf("tracking id entropy: %w", err)
	}
	date := g.clock.Now().UTC().Format("20060102")
	return fmt.Sprintf("%s-%s-%s", Prefix, date, strings.ToUpper(hex.EncodeToString(b))), nil
}
