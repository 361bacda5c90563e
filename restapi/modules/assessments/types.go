package assessments

// AssessmentRequest is the body of POST /assessments and each entry of the
// YAML import payload.
type AssessmentRequest struct {
	CveID          string                 `json:"cve_id" yaml:"cve_id"`
	Summary        string                 `json:"summary" yaml:"summary"`
	PackagePurl    string                 `json:"package_purl" yaml:"package_purl"`
	PackageVersion string                 `json:"package_version" yaml:"package_version"`
	Metrics        map[string]interface{} `json:"metrics" yaml:"metrics"`
}

// ImportPayload is the YAML body of POST /assessments/import.
type ImportPayload struct {
	Assessments []AssessmentRequest `yaml:"assessments"`
}

// ImportResult reports the outcome for one entry of an import batch.
type ImportResult struct {
	CveID       string `json:"cve_id"`
	PackagePurl string `json:"package_purl,omitempty"`
	Status      string `json:"status"`
	Key         string `json:"key,omitempty"`
	Message     string `json:"message,omitempty"`
}
