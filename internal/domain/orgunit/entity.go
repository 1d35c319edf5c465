package orgunit

// OrgUnit (satker) is the unit a subject belongs to. It owns the calendar and
// the time zone every comparison for its members is made in.
type OrgUnit struct {
	ID       string
	Name     string
	Timezone string
}
