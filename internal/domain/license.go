package domain

// Etherscan-compatible license type codes. The mapping is total: any license
// string outside the table resolves to the MIT code.
const mitLicenseCode = "3"

var licenseCodes = map[string]string{
	"MIT":          "3",
	"GPL-3.0":      "5",
	"BSD-3-Clause": "9",
	"Apache-2.0":   "12",
	"Unlicense":    "2",
}

// LicenseCode returns the explorer's numeric license code for an SPDX
// license identifier.
func LicenseCode(license string) string {
	if code, ok := licenseCodes[license]; ok {
		return code
	}
	return mitLicenseCode
}
