package credential

// AAMVA DL/ID data elements carried on PDF417 license barcodes. Each
// three-letter code maps to exactly one semantic field; the first occurrence
// of a code wins.
const (
	codeFullName       = "DAA"
	codeLastName       = "DAB"
	codeFirstName      = "DAC"
	codeMiddleName     = "DAD"
	codeAddress1       = "DAG"
	codeAddress2       = "DAH"
	codeCity           = "DAI"
	codeState          = "DAJ"
	codeZipCode        = "DAK"
	codeLicenseNumber  = "DAQ"
	codeExpirationDate = "DBA" // MMDDYYYY
	codeDateOfBirth    = "DBB" // MMDDYYYY
	codeSex            = "DBC"
	codeIssueDate      = "DBD" // MMDDYYYY
)

// fieldSetters routes a field code to its slot on the record under
// construction. Date-valued codes are collected as raw strings and parsed
// after extraction so one malformed auxiliary date cannot sink the record.
var fieldSetters = map[string]func(*rawRecord, string){
	codeFullName:       func(r *rawRecord, v string) { r.cred.FullName = v },
	codeLastName:       func(r *rawRecord, v string) { r.cred.LastName = v },
	codeFirstName:      func(r *rawRecord, v string) { r.cred.FirstName = v },
	codeMiddleName:     func(r *rawRecord, v string) { r.cred.MiddleName = v },
	codeAddress1:       func(r *rawRecord, v string) { r.cred.Address1 = v },
	codeAddress2:       func(r *rawRecord, v string) { r.cred.Address2 = v },
	codeCity:           func(r *rawRecord, v string) { r.cred.City = v },
	codeState:          func(r *rawRecord, v string) { r.cred.State = v },
	codeZipCode:        func(r *rawRecord, v string) { r.cred.ZipCode = v },
	codeLicenseNumber:  func(r *rawRecord, v string) { r.cred.LicenseNumber = v },
	codeSex:            func(r *rawRecord, v string) { r.cred.Sex = v },
	codeDateOfBirth:    func(r *rawRecord, v string) { r.dateOfBirth = v },
	codeExpirationDate: func(r *rawRecord, v string) { r.expiration = v },
	codeIssueDate:      func(r *rawRecord, v string) { r.issue = v },
}

// rawRecord accumulates extracted field values before date validation.
type rawRecord struct {
	cred        Credential
	dateOfBirth string
	expiration  string
	issue       string
	seen        map[string]bool
}
