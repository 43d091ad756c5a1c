package database

// User is a credential-store row. The password hash never leaves the server.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
}

type Incident struct {
	ID          int64  `json:"incident_id"`
	Timestamp   string `json:"timestamp"`
	Severity    string `json:"severity"`
	Category    string `json:"category"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

type Dataset struct {
	ID         int64  `json:"dataset_id"`
	Name       string `json:"name"`
	Rows       int64  `json:"rows"`
	Columns    int64  `json:"columns"`
	UploadedBy string `json:"uploaded_by"`
	UploadDate string `json:"upload_date"`
}

type Ticket struct {
	ID                  int64    `json:"ticket_id"`
	Priority            string   `json:"priority"`
	Description         string   `json:"description"`
	Status              string   `json:"status"`
	AssignedTo          string   `json:"assigned_to"`
	CreatedAt           string   `json:"created_at"`
	ResolutionTimeHours *float64 `json:"resolution_time_hours"`
}

// Values returns the full positional row for Table.Columns order.

func (i Incident) Values() []any {
	return []any{i.ID, i.Timestamp, i.Severity, i.Category, i.Status, i.Description}
}

func (d Dataset) Values() []any {
	return []any{d.ID, d.Name, d.Rows, d.Columns, d.UploadedBy, d.UploadDate}
}

func (t Ticket) Values() []any {
	var res any
	if t.ResolutionTimeHours != nil {
		res = *t.ResolutionTimeHours
	}
	return []any{t.ID, t.Priority, t.Description, t.Status, t.AssignedTo, t.CreatedAt, res}
}
