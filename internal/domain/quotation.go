package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Business-setup enum values. These match the public form contract verbatim,
// including the "Not decided yet" wording used by the frontend.
const (
	TypeFreezone = "Freezone"
	TypeMainland = "Mainland"

	OfficeSpaceYes       = "Yes"
	OfficeSpaceNo        = "No"
	OfficeSpaceUndecided = "Not decided yet"
)

// Emirates lists the seven accepted emirate values in form order.
var Emirates = []string{
	"Dubai",
	"Abu Dhabi",
	"Ajman",
	"Sharjah",
	"RAK",
	"Fujairah",
	"Umm Al Quwain",
}

// BusinessActivities lists the accepted activity values.
var BusinessActivities = []string{
	"Trading",
	"Manufacturing",
	"Services or Consultancy",
}

// FlexInt is an int that also accepts JSON string encodings ("2").
// The form frontend submits shareholder and visa counts as strings.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*f = FlexInt(n)
	return nil
}

func (f FlexInt) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(f))
}

// BusinessSetupRequest is a submitted quotation form. Immutable once
// submitted; consumed exactly once by the pricing engine.
type BusinessSetupRequest struct {
	FirstName          string   `json:"firstName"`
	LastName           string   `json:"lastName"`
	CountryCode        string   `json:"countryCode"`
	Mobile             string   `json:"mobile"`
	Email              string   `json:"email"`
	Nationality        string   `json:"nationality"`
	Type               string   `json:"type"`
	Emirate            string   `json:"emirate"`
	BusinessActivities []string `json:"businessActivities"`
	OfficeSpace        string   `json:"officeSpace"`
	Shareholders       FlexInt  `json:"shareholders"`
	Visas              FlexInt  `json:"visas"`
}

// PriceBreakdown is the computed cost estimate.
// Invariant: TotalPrice == BasePrice + VisaPrice, never negative.
type PriceBreakdown struct {
	BasePrice  int    `json:"basePrice"`
	VisaPrice  int    `json:"visaPrice"`
	TotalPrice int    `json:"totalPrice"`
	Disclaimer string `json:"disclaimer,omitempty"`
}

// PriceDisplay carries locale-formatted AED amounts for rendering.
type PriceDisplay struct {
	BasePrice  string `json:"basePrice"`
	VisaPrice  string `json:"visaPrice"`
	TotalPrice string `json:"totalPrice"`
}

// ClientInfo echoes the identity fields of the submitter.
type ClientInfo struct {
	Name        string `json:"name"`
	Mobile      string `json:"mobile"`
	Email       string `json:"email"`
	Nationality string `json:"nationality"`
}

// BusinessSetup echoes the business fields of the request for display.
type BusinessSetup struct {
	Type               string   `json:"type"`
	Emirate            string   `json:"emirate"`
	BusinessActivities []string `json:"businessActivities"`
	OfficeSpace        string   `json:"officeSpace"`
	Shareholders       int      `json:"shareholders"`
	Visas              int      `json:"visas"`
}

// Quotation is the styled quotation record returned to the user. Created once
// per submission and never mutated.
type Quotation struct {
	QuotationNumber string         `json:"quotationNumber"`
	Date            string         `json:"date"`
	Client          ClientInfo     `json:"clientInfo"`
	BusinessSetup   BusinessSetup  `json:"businessSetup"`
	Pricing         PriceBreakdown `json:"pricing"`
	Display         PriceDisplay   `json:"display"`
}
