package domain

// TagStatus is the three-way reality of the Tagged column: exactly "Yes",
// exactly "No", or anything else (missing, malformed, free text). Rows with
// an Other status are neither tagged nor untagged and fall through both sides
// of every tag-status split.
type TagStatus int

const (
	TagOther TagStatus = iota
	TagYes
	TagNo
)

func ParseTagStatus(raw string) TagStatus {
	switch raw {
	case "Yes":
		return TagYes
	case "No":
		return TagNo
	default:
		return TagOther
	}
}

// Field names a column of the inventory table.
type Field string

const (
	FieldResourceID  Field = "ResourceID"
	FieldService     Field = "Service"
	FieldDepartment  Field = "Department"
	FieldProject     Field = "Project"
	FieldOwner       Field = "Owner"
	FieldCostCenter  Field = "CostCenter"
	FieldCreatedBy   Field = "CreatedBy"
	FieldRegion      Field = "Region"
	FieldEnvironment Field = "Environment"
	FieldTagged      Field = "Tagged"
	FieldMonthlyCost Field = "MonthlyCostUSD"
	FieldTagScore    Field = "TagScore"
)

// CategoricalFields lists the fields that can be grouped and filtered on,
// in source column order.
func CategoricalFields() []Field {
	return []Field{
		FieldResourceID,
		FieldService,
		FieldDepartment,
		FieldProject,
		FieldOwner,
		FieldCostCenter,
		FieldCreatedBy,
		FieldRegion,
		FieldEnvironment,
		FieldTagged,
	}
}

// ParseField resolves a column name to a categorical field.
func ParseField(name string) (Field, bool) {
	for _, f := range CategoricalFields() {
		if string(f) == name {
			return f, true
		}
	}
	return "", false
}

// Columns is the canonical column order for import and export.
func Columns() []Field {
	return append(CategoricalFields(), FieldMonthlyCost, FieldTagScore)
}

// Resource is one row of the inventory. The loader guarantees that blank
// categorical cells are normalized to the empty string, which the rest of the
// system treats as null. MonthlyCostUSD is nil when the source value failed
// numeric parsing; a nil cost contributes zero to sums but is distinct from
// an actual zero for display and export.
type Resource struct {
	ResourceID     string
	Service        string
	Department     string
	Project        string
	Owner          string
	CostCenter     string
	CreatedBy      string
	Region         string
	Environment    string
	Tagged         string
	MonthlyCostUSD *float64
	TagScore       int
}

func (r Resource) TagStatus() TagStatus {
	return ParseTagStatus(r.Tagged)
}

// Value returns the resource's value for a categorical field. ok is false
// when the field is null for this resource.
func (r Resource) Value(f Field) (string, bool) {
	var v string
	switch f {
	case FieldResourceID:
		v = r.ResourceID
	case FieldService:
		v = r.Service
	case FieldDepartment:
		v = r.Department
	case FieldProject:
		v = r.Project
	case FieldOwner:
		v = r.Owner
	case FieldCostCenter:
		v = r.CostCenter
	case FieldCreatedBy:
		v = r.CreatedBy
	case FieldRegion:
		v = r.Region
	case FieldEnvironment:
		v = r.Environment
	case FieldTagged:
		v = r.Tagged
	}
	return v, v != ""
}

// Cost returns the monthly cost with null contributing zero.
func (r Resource) Cost() float64 {
	if r.MonthlyCostUSD == nil {
		return 0
	}
	return *r.MonthlyCostUSD
}

// Clone copies a dataset so derived views never alias the source rows.
func Clone(rs []Resource) []Resource {
	out := make([]Resource, len(rs))
	copy(out, rs)
	return out
}
