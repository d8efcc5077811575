package itr

// stateCodes maps state names to the two-digit codes used by the e-filing
// schema. The table covers the 28 states; anything unrecognized maps to
// "99". Codes are part of the external contract and must not be changed.
var stateCodes = map[string]string{
	"Andhra Pradesh":    "02",
	"Arunachal Pradesh": "03",
	"Assam":             "04",
	"Bihar":             "05",
	"Chhattisgarh":      "07",
	"Goa":               "11",
	"Gujarat":           "12",
	"Haryana":           "13",
	"Himachal Pradesh":  "14",
	"Jharkhand":         "16",
	"Karnataka":         "17",
	"Kerala":            "18",
	"Madhya Pradesh":    "20",
	"Maharashtra":       "21",
	"Manipur":           "22",
	"Meghalaya":         "23",
	"Mizoram":           "24",
	"Nagaland":          "25",
	"Odisha":            "26",
	"Punjab":            "28",
	"Rajasthan":         "29",
	"Sikkim":            "30",
	"Tamil Nadu":        "31",
	"Telangana":         "32",
	"Tripura":           "33",
	"Uttar Pradesh":     "34",
	"Uttarakhand":       "35",
	"West Bengal":       "36",
}

const stateCodeOther = "99"

// StateCode returns the e-filing state code for a state name, or "99" when
// the name is not in the table.
func StateCode(state string) string {
	if code, ok := stateCodes[state]; ok {
		return code
	}
	return stateCodeOther
}
