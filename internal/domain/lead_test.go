package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/shoaibzain/G12-Quote-AI/internal/domain"
)

func TestLeadRecordJSON_ExtensionFieldsPassThrough(t *testing.T) {
	body := `{
		"First_Name": "Amina",
		"Last_Name": "Rahman",
		"Email": "amina@example.com",
		"Lead_Source": "Website Form",
		"Quotation_Number": "G12-123456-001",
		"Total_Price": 28000
	}`

	var lead domain.LeadRecord
	if err := json.Unmarshal([]byte(body), &lead); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if lead.LastName != "Rahman" || lead.Email != "amina@example.com" {
		t.Errorf("typed fields not taken: %+v", lead)
	}
	if lead.Extra["Quotation_Number"] != "G12-123456-001" {
		t.Errorf("expected custom column in Extra, got %v", lead.Extra)
	}

	out, err := json.Marshal(lead)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(out, &m); err != nil {
		t.Fatalf("decode marshaled lead: %v", err)
	}
	if m["Last_Name"] != "Rahman" {
		t.Errorf("expected Last_Name column, got %v", m)
	}
	if m["Quotation_Number"] != "G12-123456-001" {
		t.Errorf("expected custom column preserved, got %v", m)
	}
	if _, ok := m["Phone"]; ok {
		t.Error("empty optional fields must be omitted")
	}
}

func TestLeadRecordJSON_TypedFieldsWinOverExtra(t *testing.T) {
	lead := domain.LeadRecord{
		LastName: "Rahman",
		Email:    "amina@example.com",
		Extra:    map[string]any{"Email": "spoofed@example.com"},
	}

	out, err := json.Marshal(lead)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(out, &m); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m["Email"] != "amina@example.com" {
		t.Errorf("expected typed Email to win, got %v", m["Email"])
	}
}

func TestFlexIntAcceptsStringAndNumber(t *testing.T) {
	var req domain.BusinessSetupRequest
	body := `{"shareholders": "3", "visas": 5}`
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if req.Shareholders != 3 || req.Visas != 5 {
		t.Errorf("expected 3/5, got %d/%d", req.Shareholders, req.Visas)
	}

	if err := json.Unmarshal([]byte(`{"visas": "many"}`), &req); err == nil {
		t.Error("expected an error for a non-numeric count")
	}
}

func TestFormatAEDGroupsThousands(t *testing.T) {
	if got := domain.FormatAED(28000); got != "AED 28,000" {
		t.Errorf("expected AED 28,000, got %q", got)
	}
	if got := domain.FormatAED(0); got != "AED 0" {
		t.Errorf("expected AED 0, got %q", got)
	}
}
