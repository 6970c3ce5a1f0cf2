package printing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDocumentTemplates(t *testing.T) {
	templates := GetDocumentTemplates()
	require.Len(t, templates, 2)

	seen := make(map[DocType]bool)
	for _, tmpl := range templates {
		assert.NotEmpty(t, tmpl.Name)
		assert.NotEmpty(t, tmpl.FilePath)
		assert.True(t, tmpl.PaperSize.IsValid())
		assert.True(t, tmpl.Orientation.IsValid())
		assert.False(t, seen[tmpl.DocType], "duplicate template for %s", tmpl.DocType)
		seen[tmpl.DocType] = true
	}
}

func TestLoadTemplateContent(t *testing.T) {
	t.Run("loads every embedded template", func(t *testing.T) {
		for _, tmpl := range GetDocumentTemplates() {
			content, err := LoadTemplateContent(tmpl.FilePath)
			require.NoError(t, err, "template %s", tmpl.FilePath)
			assert.Contains(t, content, "<!DOCTYPE html>")
			assert.Contains(t, content, "charset=\"UTF-8\"")
		}
	})

	t.Run("unknown path fails", func(t *testing.T) {
		_, err := LoadTemplateContent("templates/missing.html")
		assert.Error(t, err)
	})
}

func TestGetTemplateForDocType(t *testing.T) {
	t.Run("purchase order is portrait A4", func(t *testing.T) {
		tmpl := GetTemplateForDocType(DocTypePurchaseOrder)
		require.NotNil(t, tmpl)
		assert.Equal(t, PaperSizeA4, tmpl.PaperSize)
		assert.Equal(t, OrientationPortrait, tmpl.Orientation)
	})

	t.Run("export is landscape A4", func(t *testing.T) {
		tmpl := GetTemplateForDocType(DocTypeStayExport)
		require.NotNil(t, tmpl)
		assert.Equal(t, PaperSizeA4, tmpl.PaperSize)
		assert.Equal(t, OrientationLandscape, tmpl.Orientation)
	})

	t.Run("unknown doc type yields nil", func(t *testing.T) {
		assert.Nil(t, GetTemplateForDocType(DocType("INVOICE")))
	})
}

func TestEmbeddedTemplatesParse(t *testing.T) {
	engine := NewTemplateEngine()

	tmpl := GetTemplateForDocType(DocTypeStayExport)
	content, err := LoadTemplateContent(tmpl.FilePath)
	require.NoError(t, err)

	// An export with no rows renders the empty notice
	html, err := engine.RenderString("stay_export", content, &exportData{
		Title:    "ÉTAT DES BONS DE COMMANDE",
		Subtitle: "Tous les bons de commande",
	})
	require.NoError(t, err)
	assert.Contains(t, html, "Aucun bon de commande")
}
