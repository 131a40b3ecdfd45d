package entities

// InstallMethod describes how the inventory scanner classified an entry
type InstallMethod string

// Install methods recorded in the migration package
const (
	InstallMethodWinget     InstallMethod = "Winget"
	InstallMethodChocolatey InstallMethod = "Chocolatey"
	InstallMethodStore      InstallMethod = "Store"
	InstallMethodManual     InstallMethod = "Manual"
)

// SoftwareEntry represents one inventoried installed application.
// Entries are read-only input supplied by the inventory scanner;
// duplicates are allowed and processed independently.
type SoftwareEntry struct {
	Name              string
	Version           string
	Publisher         string
	InstallMethod     InstallMethod
	WingetID          string
	ChocolateyID      string
	PackageFamilyName string
}

// PreResolved reports whether the scanner already associated the entry
// with a package manager, in which case the resolution pipeline is
// bypassed entirely.
func (e SoftwareEntry) PreResolved() bool {
	switch e.InstallMethod {
	case InstallMethodWinget, InstallMethodChocolatey, InstallMethodStore:
		return true
	}
	return e.WingetID != "" || e.ChocolateyID != ""
}
