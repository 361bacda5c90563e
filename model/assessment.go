// Package model - Assessment defines the scored vulnerability document stored in the database.
package model

import (
	"time"

	"github.com/vulnmgt/scoring-backend/util"
)

// Assessment represents one scored vulnerability occurrence: the CVE, the
// affected package, the metric assignments it was scored from, and the
// resulting scores.
type Assessment struct {
	Key     string `json:"_key,omitempty"`
	ObjType string `json:"objtype,omitempty"`

	CveID   string `json:"cve_id"`
	Summary string `json:"summary,omitempty"`

	PackagePurl       string `json:"package_purl,omitempty"`
	PackageVersion    string `json:"package_version,omitempty"`
	VersionMajor      *int   `json:"version_major,omitempty"`
	VersionMinor      *int   `json:"version_minor,omitempty"`
	VersionPatch      *int   `json:"version_patch,omitempty"`
	VersionPrerelease string `json:"version_prerelease,omitempty"`

	// Metrics holds the normalized (lowercased, validated) assignments the
	// scores were computed from.
	Metrics map[string]string `json:"metrics"`

	BaseScore          float64  `json:"base_score"`
	TemporalScore      *float64 `json:"temporal_score,omitempty"`
	EnvironmentalScore *float64 `json:"environmental_score,omitempty"`
	SeverityRating     string   `json:"severity_rating"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewAssessment creates a new Assessment with default values.
func NewAssessment() *Assessment {
	now := time.Now()
	return &Assessment{
		ObjType:   "Assessment",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NormalizePackage cleans the package PURL and version and populates the
// parsed semver components. A missing package identity is left untouched;
// a malformed PURL is an error.
func (a *Assessment) NormalizePackage() error {
	if a.PackagePurl != "" {
		cleaned, err := util.CleanPURL(a.PackagePurl)
		if err != nil {
			return err
		}
		a.PackagePurl = cleaned
	}

	if a.PackageVersion == "" {
		return nil
	}

	a.PackageVersion = util.CleanVersion(a.PackageVersion)
	if parsed := util.ParseSemver(a.PackageVersion); parsed != nil {
		a.VersionMajor = parsed.Major
		a.VersionMinor = parsed.Minor
		a.VersionPatch = parsed.Patch
		a.VersionPrerelease = parsed.Prerelease
	}
	return nil
}
