package version

import (
	"fmt"
	"runtime"
)

// Src2DWVersion is the semver of Src2DW
type Src2DWVersion struct {
	major int
	minor int
	patch int
	name  string
}

// NewSrc2DWVersion creates a Src2DWVersion object
func NewSrc2DWVersion() *Src2DWVersion {
	return &Src2DWVersion{
		major: Src2DWVerMajor,
		minor: Src2DWVerMinor,
		patch: Src2DWVerPatch,
		name:  Src2DWVerName,
	}
}

// Name returns the alternative name of Src2DWVersion
func (v *Src2DWVersion) Name() string {
	return v.name
}

// SemVer returns Src2DWVersion in semver format
func (v *Src2DWVersion) SemVer() string {
	return fmt.Sprintf("%d.%d.%d", v.major, v.minor, v.patch)
}

// String converts Src2DWVersion to a string
func (v *Src2DWVersion) String() string {
	return fmt.Sprintf("%s %s\n%s", v.SemVer(), v.name, NewSrc2DWBuildInfo())
}

// Src2DWBuild is the info of building environment
type Src2DWBuild struct {
	GitHash   string `json:"gitHash"`
	GitRef    string `json:"gitRef"`
	GoVersion string `json:"goVersion"`
}

// NewSrc2DWBuildInfo creates a Src2DWBuild object
func NewSrc2DWBuildInfo() *Src2DWBuild {
	return &Src2DWBuild{
		GitHash:   GitHash,
		GitRef:    GitRef,
		GoVersion: runtime.Version(),
	}
}

// String converts Src2DWBuild to a string
func (v *Src2DWBuild) String() string {
	return fmt.Sprintf("Go Version: %s\nGit Ref: %s\nGitHash: %s", v.GoVersion, v.GitRef, v.GitHash)
}
