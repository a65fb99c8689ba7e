package model

// LookupRecord is one normalized entry from the phone-lookup provider.
// Providers wrap and shape their payloads inconsistently; the adapter flattens
// everything into this struct and drops entries with no usable fields.
type LookupRecord struct {
	Mobile     string `json:"mobile"`
	AltMobile  string `json:"alt_mobile"`
	Name       string `json:"name"`
	FatherName string `json:"father_name"`
	Circle     string `json:"circle"`
	IDNumber   string `json:"id_number"`
	Address    string `json:"address"`
	Email      string `json:"email"`
}

// IsZero reports whether the record carries no usable data.
func (r LookupRecord) IsZero() bool {
	return r.Mobile == "" && r.AltMobile == "" && r.Name == "" && r.FatherName == "" &&
		r.Circle == "" && r.IDNumber == "" && r.Address == "" && r.Email == ""
}
