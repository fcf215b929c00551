package domain

import "encoding/json"

// LeadRecord is the payload sent to Zoho CRM. Last_Name and Email are
// required; everything else is optional. Fields the typed struct does not
// name are kept in Extra and passed through to the CRM untouched.
type LeadRecord struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	Company     string
	Description string
	LeadSource  string

	// Extra holds open extension fields (e.g. custom CRM columns).
	Extra map[string]any
}

// leadFieldNames are the CRM column names of the typed fields.
var leadFieldNames = []string{
	"First_Name", "Last_Name", "Email", "Phone", "Company", "Description", "Lead_Source",
}

func (l LeadRecord) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(l.Extra)+7)
	for k, v := range l.Extra {
		m[k] = v
	}
	// Typed fields win over Extra on collision.
	m["Last_Name"] = l.LastName
	m["Email"] = l.Email
	setIfNonEmpty(m, "First_Name", l.FirstName)
	setIfNonEmpty(m, "Phone", l.Phone)
	setIfNonEmpty(m, "Company", l.Company)
	setIfNonEmpty(m, "Description", l.Description)
	setIfNonEmpty(m, "Lead_Source", l.LeadSource)
	return json.Marshal(m)
}

func (l *LeadRecord) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	take := func(key string, dst *string) {
		if v, ok := raw[key]; ok {
			_ = json.Unmarshal(v, dst)
			delete(raw, key)
		}
	}
	take("First_Name", &l.FirstName)
	take("Last_Name", &l.LastName)
	take("Email", &l.Email)
	take("Phone", &l.Phone)
	take("Company", &l.Company)
	take("Description", &l.Description)
	take("Lead_Source", &l.LeadSource)

	if len(raw) > 0 {
		l.Extra = make(map[string]any, len(raw))
		for k, v := range raw {
			var val any
			if err := json.Unmarshal(v, &val); err != nil {
				return err
			}
			l.Extra[k] = val
		}
	}
	return nil
}

// DealRecord is an opportunity record for the CRM Deals module.
type DealRecord struct {
	DealName    string
	Amount      float64
	Stage       string
	ClosingDate string

	Extra map[string]any
}

func (d DealRecord) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(d.Extra)+4)
	for k, v := range d.Extra {
		m[k] = v
	}
	m["Deal_Name"] = d.DealName
	if d.Amount != 0 {
		m["Amount"] = d.Amount
	}
	setIfNonEmpty(m, "Stage", d.Stage)
	setIfNonEmpty(m, "Closing_Date", d.ClosingDate)
	return json.Marshal(m)
}

func (d *DealRecord) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	if v, ok := raw["Deal_Name"]; ok {
		_ = json.Unmarshal(v, &d.DealName)
		delete(raw, "Deal_Name")
	}
	if v, ok := raw["Amount"]; ok {
		_ = json.Unmarshal(v, &d.Amount)
		delete(raw, "Amount")
	}
	if v, ok := raw["Stage"]; ok {
		_ = json.Unmarshal(v, &d.Stage)
		delete(raw, "Stage")
	}
	if v, ok := raw["Closing_Date"]; ok {
		_ = json.Unmarshal(v, &d.ClosingDate)
		delete(raw, "Closing_Date")
	}

	if len(raw) > 0 {
		d.Extra = make(map[string]any, len(raw))
		for k, v := range raw {
			var val any
			if err := json.Unmarshal(v, &val); err != nil {
				return err
			}
			d.Extra[k] = val
		}
	}
	return nil
}

func setIfNonEmpty(m map[string]any, key, val string) {
	if val != "" {
		m[key] = val
	}
}

// CRMRecordResult is the per-record status Zoho returns for a create call.
type CRMRecordResult struct {
	Code    string `json:"code"`
	Status  string `json:"status"`
	Message string `json:"message"`
	Details struct {
		ID string `json:"id"`
	} `json:"details"`
}

// CRMResponse is the body of a successful record-create call.
type CRMResponse struct {
	Data []CRMRecordResult `json:"data"`
}

// CRMStatus reports CRM connectivity for the status endpoint. The token is
// never included beyond its last four characters.
type CRMStatus struct {
	Reachable   bool   `json:"reachable"`
	APIDomain   string `json:"apiDomain"`
	TokenSuffix string `json:"tokenSuffix,omitempty"`
	Error       string `json:"error,omitempty"`
}
