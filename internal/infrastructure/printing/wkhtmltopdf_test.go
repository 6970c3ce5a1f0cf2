package printing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestWkhtmltopdfRenderer_CommandArgs(t *testing.T) {
	r := &WkhtmltopdfRenderer{
		cfg: &WkhtmltopdfConfig{
			TempDir:      t.TempDir(),
			DPI:          defaultDPI,
			ImageQuality: defaultImageQuality,
		},
		log: zap.NewNop(),
	}

	req := &RenderRequest{
		HTML:        "<div>bon de commande</div>",
		PaperSize:   PaperSizeA4,
		Orientation: OrientationLandscape,
		Margins:     Margins{Top: 10, Right: 10, Bottom: 10, Left: 10},
		Title:       "PO-2026-00001",
	}

	args, cleanup := r.commandArgs(req, "/tmp/in.html", "/tmp/out.pdf")
	defer cleanup()

	joined := ""
	for _, a := range args {
		joined += a + " "
	}

	assert.Contains(t, joined, "--page-size A4")
	assert.Contains(t, joined, "--orientation Landscape")
	assert.Contains(t, joined, "--margin-top 10mm")
	assert.Contains(t, joined, "--disable-javascript")
	assert.Contains(t, joined, "--disable-local-file-access")
	assert.Contains(t, joined, "--title PO-2026-00001")
	assert.Equal(t, "/tmp/out.pdf", args[len(args)-1])
	assert.Equal(t, "/tmp/in.html", args[len(args)-2])
}

func TestPageSizeArg(t *testing.T) {
	assert.Equal(t, "A4", pageSizeArg(PaperSizeA4))
	assert.Equal(t, "A5", pageSizeArg(PaperSizeA5))
	assert.Equal(t, "Letter", pageSizeArg(PaperSizeLetter))
	assert.Equal(t, "A4", pageSizeArg(PaperSize("???")))
}

func TestOrientationArg(t *testing.T) {
	assert.Equal(t, "Portrait", orientationArg(OrientationPortrait))
	assert.Equal(t, "Landscape", orientationArg(OrientationLandscape))
}
