package stats

import "fmt"

// Domain selects between record-count and usage-count metrics.
type Domain int

const (
	// DomainRecords covers record, parent, uploader and file metrics.
	DomainRecords Domain = iota
	// DomainUsage covers view, download and visitor metrics.
	DomainUsage
)

// Cadence selects between period increments and cumulative totals.
type Cadence int

const (
	// CadenceDelta is a period-scoped net change.
	CadenceDelta Cadence = iota
	// CadenceSnapshot is a cumulative total as of a point in time.
	CadenceSnapshot
)

// Basis anchors record-domain time series to a record lifecycle event.
type Basis int

const (
	// BasisAdded anchors on the date a record was added to the collection.
	BasisAdded Basis = iota
	// BasisCreated anchors on the record creation date.
	BasisCreated
	// BasisPublished anchors on the record publication date.
	BasisPublished
)

// String returns the raw document key suffix for the basis.
func (b Basis) String() string {
	switch b {
	case BasisAdded:
		return "added"
	case BasisCreated:
		return "created"
	case BasisPublished:
		return "published"
	default:
		return "added"
	}
}

// AllBases lists every basis in canonical order.
var AllBases = []Basis{BasisAdded, BasisCreated, BasisPublished}

// MarshalText encodes the basis as its document key suffix, keeping JSON
// map keys readable.
func (b Basis) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText decodes a basis from its document key suffix.
func (b *Basis) UnmarshalText(text []byte) error {
	for _, basis := range AllBases {
		if basis.String() == string(text) {
			*b = basis
			return nil
		}
	}
	return fmt.Errorf("unknown basis %q", text)
}

// Category is a breakdown dimension records or usage events are grouped by.
type Category int

const (
	// CategoryGlobal is the single-member whole-collection rollup.
	CategoryGlobal Category = iota
	CategoryResourceTypes
	CategoryAccessStatuses
	CategoryLanguages
	CategoryRights
	CategoryAffiliations
	CategoryFunders
	CategorySubjects
	CategoryPublishers
	CategoryPeriodicals
	CategoryFileTypes
	CategoryFilePresence
	CategoryCountries
	CategoryReferrers
)

// String returns the stable category name used in cache keys and tests.
func (c Category) String() string {
	switch c {
	case CategoryGlobal:
		return "global"
	case CategoryResourceTypes:
		return "resourceTypes"
	case CategoryAccessStatuses:
		return "accessStatuses"
	case CategoryLanguages:
		return "languages"
	case CategoryRights:
		return "rights"
	case CategoryAffiliations:
		return "affiliations"
	case CategoryFunders:
		return "funders"
	case CategorySubjects:
		return "subjects"
	case CategoryPublishers:
		return "publishers"
	case CategoryPeriodicals:
		return "periodicals"
	case CategoryFileTypes:
		return "fileTypes"
	case CategoryFilePresence:
		return "filePresence"
	case CategoryCountries:
		return "countries"
	case CategoryReferrers:
		return "referrers"
	default:
		return "unknown"
	}
}

// Label returns the human-readable name shown in widget titles.
func (c Category) Label() string {
	switch c {
	case CategoryGlobal:
		return "All records"
	case CategoryResourceTypes:
		return "Resource types"
	case CategoryAccessStatuses:
		return "Access statuses"
	case CategoryLanguages:
		return "Languages"
	case CategoryRights:
		return "Licenses"
	case CategoryAffiliations:
		return "Affiliations"
	case CategoryFunders:
		return "Funders"
	case CategorySubjects:
		return "Subjects"
	case CategoryPublishers:
		return "Publishers"
	case CategoryPeriodicals:
		return "Journals"
	case CategoryFileTypes:
		return "File types"
	case CategoryFilePresence:
		return "File presence"
	case CategoryCountries:
		return "Countries"
	case CategoryReferrers:
		return "Referrers"
	default:
		return "Unknown"
	}
}

// MarshalText encodes the category as its stable name, keeping JSON map
// keys readable.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a category from its stable name.
func (c *Category) UnmarshalText(text []byte) error {
	for _, category := range CategoryOrder {
		if category.String() == string(text) {
			*c = category
			return nil
		}
	}
	return fmt.Errorf("unknown category %q", text)
}

// SearchField returns the record search field used to build member links.
// Dimensions without a searchable record field return "".
func (c Category) SearchField() string {
	switch c {
	case CategoryResourceTypes:
		return "metadata.resource_type.id"
	case CategoryAccessStatuses:
		return "access.status"
	case CategoryLanguages:
		return "metadata.languages.id"
	case CategoryRights:
		return "metadata.rights.id"
	case CategoryAffiliations:
		return "metadata.creators.affiliations.id"
	case CategoryFunders:
		return "metadata.funding.funder.id"
	case CategorySubjects:
		return "metadata.subjects.id"
	case CategoryPublishers:
		return "metadata.publisher"
	case CategoryPeriodicals:
		return "custom_fields.journal:journal.title.keyword"
	case CategoryFileTypes:
		return "files.entries.ext"
	default:
		return ""
	}
}

// recordCategories maps every record-domain breakdown to its subcounts key.
// The closed table makes an unhandled dimension impossible to reach.
var recordCategories = map[Category]string{
	CategoryResourceTypes:  "by_resource_type",
	CategoryAccessStatuses: "by_access_status",
	CategoryLanguages:      "by_language",
	CategoryRights:         "by_rights",
	CategoryAffiliations:   "by_affiliation",
	CategoryFunders:        "by_funder",
	CategorySubjects:       "by_subject",
	CategoryPublishers:     "by_publisher",
	CategoryPeriodicals:    "by_periodical",
	CategoryFileTypes:      "by_file_type",
	CategoryFilePresence:   "by_file_presence",
}

// usageCategories maps every usage-domain breakdown to its subcounts key.
var usageCategories = map[Category]string{
	CategoryResourceTypes:  "by_resource_type",
	CategoryAccessStatuses: "by_access_status",
	CategoryLanguages:      "by_language",
	CategoryRights:         "by_rights",
	CategoryAffiliations:   "by_affiliation",
	CategoryFunders:        "by_funder",
	CategorySubjects:       "by_subject",
	CategoryPublishers:     "by_publisher",
	CategoryFileTypes:      "by_file_type",
	CategoryCountries:      "by_country",
	CategoryReferrers:      "by_referrer",
}

// splitUsageCategories lists the usage-snapshot breakdowns whose rows carry
// both view and download totals and must stay addressable independently.
var splitUsageCategories = []Category{
	CategoryCountries,
	CategoryReferrers,
	CategoryAffiliations,
	CategorySubjects,
	CategoryPublishers,
	CategoryRights,
}

// CategoryOrder is the canonical display order for breakdown dimensions.
var CategoryOrder = []Category{
	CategoryGlobal,
	CategoryResourceTypes,
	CategoryAccessStatuses,
	CategoryLanguages,
	CategoryRights,
	CategoryAffiliations,
	CategoryFunders,
	CategorySubjects,
	CategoryPublishers,
	CategoryPeriodicals,
	CategoryFileTypes,
	CategoryFilePresence,
	CategoryCountries,
	CategoryReferrers,
}
