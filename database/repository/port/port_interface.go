package portRepo

import (
	"voltport/models"
)

// PortRepository defines methods for charging-port data access. A port owns
// its weekly schedule; schedule edits go through Update and replace the
// embedded schedule array wholesale.
type PortRepository interface {
	// GetByID retrieves a port by its unique ID, or nil when absent.
	GetByID(id string) (*models.Port, error)
	// GetAll retrieves ports, optionally filtered by a case-insensitive city
	// substring.
	GetAll(city string) ([]models.Port, error)
	// Create inserts a new port record.
	Create(port *models.Port) error
	// Update replaces an existing port record, including its schedule.
	Update(port *models.Port) error
	// Delete removes a port record by its ID.
	Delete(id string) error
	// Count returns the total number of ports.
	Count() (int64, error)
	// CountActive returns the number of active ports.
	CountActive() (int64, error)
}
