package printer

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestPrinter_Streams(t *testing.T) {
	var out, errOut bytes.Buffer
	p := New(&out, &errOut)

	p.Successf("saved %d", 3)
	p.Infof("hello")
	p.Printf("plain")
	p.Warnf("careful")
	p.Errorf("broken: %s", "disk")

	assert.Equal(t, "✓ saved 3\n• hello\nplain\n", ansi.Strip(out.String()))
	assert.Equal(t, "! careful\n✗ broken: disk\n", ansi.Strip(errOut.String()))
}

func TestPrinter_Success_detail(t *testing.T) {
	var out bytes.Buffer
	p := New(&out, &out)

	p.Success("Review created", "id 7")
	p.Success("Done", "")

	assert.Equal(t, "✓ Review created id 7\n✓ Done\n", ansi.Strip(out.String()))
}

func TestCtx(t *testing.T) {
	var out bytes.Buffer
	p := New(&out, &out)

	ctx := NewContext(context.Background(), p)
	assert.Same(t, p, Ctx(ctx))
	assert.NotNil(t, Ctx(context.Background()))
}
