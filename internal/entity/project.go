package entity

import "time"

type ServiceType string

const (
	ServiceTypeMonolithic    ServiceType = "monolithic"
	ServiceTypeMicroservices ServiceType = "microservices"
)

// Project owns pipeline runs. RepositoryURL is the resolution key incoming
// webhook payloads are matched against.
type Project struct {
	ID             ID          `json:"id"`
	Name           string      `json:"name"`
	Description    string      `json:"description"`
	RepositoryURL  string      `json:"repository_url"`
	ServiceType    ServiceType `json:"service_type"`
	ArchitectureID *ID         `json:"architecture_id,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

func (p *Project) FillDefaults() {
	if p.ServiceType == "" {
		p.ServiceType = ServiceTypeMonolithic
	}
}
