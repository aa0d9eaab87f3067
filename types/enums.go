package types

// ProductGroup is the commodity group a document belongs to.
// It is sent both as the "pg" query parameter and in the request body.
type ProductGroup string

const (
	ProductGroupClothes     ProductGroup = "clothes"
	ProductGroupShoes       ProductGroup = "shoes"
	ProductGroupTobacco     ProductGroup = "tobacco"
	ProductGroupPerfumery   ProductGroup = "perfumery"
	ProductGroupTires       ProductGroup = "tires"
	ProductGroupElectronics ProductGroup = "electronics"
	ProductGroupPharma      ProductGroup = "pharma"
	ProductGroupMilk        ProductGroup = "milk"
	ProductGroupBicycle     ProductGroup = "bicycle"
	ProductGroupWheelchairs ProductGroup = "wheelchairs"
)

var productGroups = []ProductGroup{
	ProductGroupClothes,
	ProductGroupShoes,
	ProductGroupTobacco,
	ProductGroupPerfumery,
	ProductGroupTires,
	ProductGroupElectronics,
	ProductGroupPharma,
	ProductGroupMilk,
	ProductGroupBicycle,
	ProductGroupWheelchairs,
}

func ProductGroups() []ProductGroup {
	out := make([]ProductGroup, len(productGroups))
	copy(out, productGroups)
	return out
}

func (g ProductGroup) IsKnown() bool {
	for _, known := range productGroups {
		if g == known {
			return true
		}
	}
	return false
}

// DocumentFormat is the format of the signed product document.
type DocumentFormat string

const (
	DocumentFormatManual DocumentFormat = "MANUAL"
	DocumentFormatXML    DocumentFormat = "XML"
	DocumentFormatCSV    DocumentFormat = "CSV"
)

func (f DocumentFormat) IsKnown() bool {
	switch f {
	case DocumentFormatManual, DocumentFormatXML, DocumentFormatCSV:
		return true
	}
	return false
}
