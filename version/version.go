package version

var (
	// Src2DWVerMajor is the major version of Src2DW
	Src2DWVerMajor = 0
	// Src2DWVerMinor is the minor version of Src2DW
	Src2DWVerMinor = 1
	// Src2DWVerPatch is the patch version of Src2DW
	Src2DWVerPatch = 0
	// Src2DWVerName is an alternative name of the version
	Src2DWVerName = "Src2DW"
	// GitHash is the current git commit hash
	GitHash = "Unknown"
	// GitRef is the current git reference name (branch or tag)
	GitRef = "Unknown"
)
