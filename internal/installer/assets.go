package installer

// AssetKind distinguishes directory assets from single-file assets.
type AssetKind int

const (
	// AssetDir is copied with the directory copier and gated by force.
	AssetDir AssetKind = iota
	// AssetFile is copied with the file copier and never overwritten.
	AssetFile
)

func (k AssetKind) String() string {
	if k == AssetDir {
		return "directory"
	}
	return "file"
}

// Asset is one named entry of the template root that gets installed.
type Asset struct {
	Name string
	Kind AssetKind
	// Required assets make the install fail when absent from the template root.
	Required bool
}

// FactoryDir is the droid definitions tree every install carries.
const FactoryDir = ".factory"

// DefaultAssets is the fixed install set, in install order.
var DefaultAssets = []Asset{
	{Name: FactoryDir, Kind: AssetDir, Required: true},
	{Name: "AGENTS.md.template", Kind: AssetFile},
	{Name: "DSM_README.md", Kind: AssetFile},
}
