package approval

// SignatureFields are the caller-editable columns of a signature slot.
type SignatureFields struct {
	UserID    *string
	Name      *string
	Email     *string
	IsDeleted bool
}

// AssetFields are the caller-editable columns of an approval asset line.
type AssetFields struct {
	AssetID       *string
	Name          *string
	SerialNumber  *string
	IsMaintenance *bool
	Image         *string
	CategoryID    *string
	IsDeleted     bool
}

// Entry is one nested child in an upsert batch: either NewEntry or ExistingEntry.
type Entry[F any] interface {
	fields() F
}

type NewEntry[F any] struct {
	Fields F
}

type ExistingEntry[F any] struct {
	ID     string
	Fields F
}

func (e NewEntry[F]) fields() F      { return e.Fields }
func (e ExistingEntry[F]) fields() F { return e.Fields }

// EntryOf tags a raw child by the presence of its id.
func EntryOf[F any](id string, f F) Entry[F] {
	if id == "" {
		return NewEntry[F]{Fields: f}
	}
	return ExistingEntry[F]{ID: id, Fields: f}
}

// Apply copies editable fields onto s.
func (f SignatureFields) Apply(s *Signature) {
	s.UserID = f.UserID
	s.Name = f.Name
	s.Email = f.Email
	s.IsDeleted = f.IsDeleted
}

// Apply copies editable fields onto a.
func (f AssetFields) Apply(a *Asset) {
	a.AssetID = f.AssetID
	a.Name = f.Name
	a.SerialNumber = f.SerialNumber
	a.IsMaintenance = f.IsMaintenance
	a.Image = f.Image
	a.CategoryID = f.CategoryID
	a.IsDeleted = f.IsDeleted
}
