package domain

// ResourceKind distinguishes rooms from inventory items
type ResourceKind string

const (
	KindRoom      ResourceKind = "room"
	KindEquipment ResourceKind = "equipment"
)

// Resource is a room or inventory item whose availability is scheduled
type Resource struct {
	ID       int64
	Name     string
	Kind     ResourceKind
	IsActive bool
}
