package entity

// DoctorFilter is a domain-level filter for listing doctors.
// Used by repository layer to avoid coupling with delivery DTOs.
type DoctorFilter struct {
	Name           string // Filter by doctor name (ILIKE)
	Specialization string // Filter by specialization (ILIKE)
}

// ProcedureFilter is a domain-level filter for listing procedures.
type ProcedureFilter struct {
	Name       string // Filter by procedure name (ILIKE)
	CategoryID int    // Filter by category, 0 means all
}
