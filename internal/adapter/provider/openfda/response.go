package openfda

import "encoding/json"

// apiResponse is the envelope shared by the drug/ndc and drug/enforcement endpoints.
type apiResponse struct {
	Results []json.RawMessage `json:"results"`
}

// apiProduct is one record of the drug/ndc endpoint.
type apiProduct struct {
	ProductNDC         string       `json:"product_ndc"`
	BrandName          string       `json:"brand_name"`
	GenericName        string       `json:"generic_name"`
	LabelerName        string       `json:"labeler_name"`
	DosageForm         string       `json:"dosage_form"`
	Route              []string     `json:"route"`
	MarketingCategory  string       `json:"marketing_category"`
	ApplicationNumber  string       `json:"application_number"`
	MarketingStartDate string       `json:"marketing_start_date"`
	MarketingEndDate   string       `json:"marketing_end_date"`
	ListingExpiration  string       `json:"listing_expiration_date"`
	OpenFDA            apiOpenFDA   `json:"openfda"`
	Packaging          []apiPackage `json:"packaging"`
}

type apiOpenFDA struct {
	ManufacturerName []string `json:"manufacturer_name"`
}

type apiPackage struct {
	PackageNDC  string `json:"package_ndc"`
	Description string `json:"description"`
}

// apiRecall is one record of the drug/enforcement endpoint.
type apiRecall struct {
	RecallNumber         string `json:"recall_number"`
	ReasonForRecall      string `json:"reason_for_recall"`
	Classification       string `json:"classification"`
	Status               string `json:"status"`
	RecallInitiationDate string `json:"recall_initiation_date"`
	RecallingFirm        string `json:"recalling_firm"`
	ProductDescription   string `json:"product_description"`
}
