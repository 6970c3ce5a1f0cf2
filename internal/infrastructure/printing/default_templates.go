package printing

import (
	"embed"
	"fmt"
)

//go:embed templates/*.html
var templateFS embed.FS

// DocType identifies a printable document of the workflow
type DocType string

const (
	DocTypePurchaseOrder DocType = "PURCHASE_ORDER"
	DocTypeStayExport    DocType = "STAY_EXPORT"
)

// DocumentTemplate describes an embedded print template and its page setup
type DocumentTemplate struct {
	DocType     DocType
	Name        string
	Description string
	PaperSize   PaperSize
	Orientation Orientation
	Margins     Margins
	FilePath    string // Path within embed.FS
}

// GetDocumentTemplates returns all embedded template configurations
func GetDocumentTemplates() []DocumentTemplate {
	return []DocumentTemplate{
		{
			DocType:     DocTypePurchaseOrder,
			Name:        "Bon de commande A4",
			Description: "Bon de commande d'hébergement, format A4 portrait, avec employé, séjour, hôtel et récapitulatif financier",
			PaperSize:   PaperSizeA4,
			Orientation: OrientationPortrait,
			Margins:     DefaultMargins(),
			FilePath:    "templates/purchase_order_a4.html",
		},
		{
			DocType:     DocTypeStayExport,
			Name:        "État des bons de commande A4",
			Description: "Liste tabulaire des bons de commande réservés, format A4 paysage, avec sous-totaux par statut de paiement",
			PaperSize:   PaperSizeA4,
			Orientation: OrientationLandscape,
			Margins:     Margins{Top: 12, Right: 10, Bottom: 12, Left: 10},
			FilePath:    "templates/stay_export_a4_landscape.html",
		},
	}
}

// LoadTemplateContent loads the HTML content for an embedded template
func LoadTemplateContent(filePath string) (string, error) {
	content, err := templateFS.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read template file %s: %w", filePath, err)
	}
	return string(content), nil
}

// GetTemplateForDocType finds the template configuration for a document type
func GetTemplateForDocType(docType DocType) *DocumentTemplate {
	templates := GetDocumentTemplates()
	for _, t := range templates {
		if t.DocType == docType {
			return &t
		}
	}
	return nil
}
