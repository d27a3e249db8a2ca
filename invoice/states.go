package invoice

import "strings"

// State is an Indian state or union territory with its GST state code (the
// first two digits of a GSTIN issued there).
type State struct {
	Name string
	Code string
}

// States lists the Indian states and union territories used for place of
// supply, with their GST codes.
var States = []State{
	{"Andhra Pradesh", "37"},
	{"Arunachal Pradesh", "12"},
	{"Assam", "18"},
	{"Bihar", "10"},
	{"Chhattisgarh", "22"},
	{"Goa", "30"},
	{"Gujarat", "24"},
	{"Haryana", "06"},
	{"Himachal Pradesh", "02"},
	{"Jharkhand", "20"},
	{"Karnataka", "29"},
	{"Kerala", "32"},
	{"Madhya Pradesh", "23"},
	{"Maharashtra", "27"},
	{"Manipur", "14"},
	{"Meghalaya", "17"},
	{"Mizoram", "15"},
	{"Nagaland", "13"},
	{"Odisha", "21"},
	{"Punjab", "03"},
	{"Rajasthan", "08"},
	{"Sikkim", "11"},
	{"Tamil Nadu", "33"},
	{"Telangana", "36"},
	{"Tripura", "16"},
	{"Uttar Pradesh", "09"},
	{"Uttarakhand", "05"},
	{"West Bengal", "19"},
	{"Andaman and Nicobar Islands", "35"},
	{"Chandigarh", "04"},
	{"Dadra and Nagar Haveli and Daman and Diu", "26"},
	{"Delhi", "07"},
	{"Jammu and Kashmir", "01"},
	{"Ladakh", "38"},
	{"Lakshadweep", "31"},
	{"Puducherry", "34"},
}

// StateCode looks up the GST state code for a state name. The second return
// value is false for unknown names.
func StateCode(name string) (string, bool) {
	needle := strings.TrimSpace(name)
	for _, s := range States {
		if strings.EqualFold(s.Name, needle) {
			return s.Code, true
		}
	}
	return "", false
}

// KnownState reports whether the name is a recognised state or union
// territory.
func KnownState(name string) bool {
	_, ok := StateCode(name)
	return ok
}
