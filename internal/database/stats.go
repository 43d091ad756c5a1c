package database

// DashboardStats carries the aggregate counts the dashboard home page and
// the summary report are built from. Raw rows never leave the store for
// these consumers.
type DashboardStats struct {
	IncidentCount int `json:"incident_count"`
	DatasetCount  int `json:"dataset_count"`
	TicketCount   int `json:"ticket_count"`
	OpenIncidents int `json:"open_incidents"`
	OpenTickets   int `json:"open_tickets"`
}

func (db *DB) GetStats() (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error
	if stats.IncidentCount, err = db.CountRows(Incidents); err != nil {
		return nil, err
	}
	if stats.DatasetCount, err = db.CountRows(Datasets); err != nil {
		return nil, err
	}
	if stats.TicketCount, err = db.CountRows(Tickets); err != nil {
		return nil, err
	}
	if stats.OpenIncidents, err = db.CountRowsWhere(Incidents, "status", "Open"); err != nil {
		return nil, err
	}
	if stats.OpenTickets, err = db.CountRowsWhere(Tickets, "status", "Open"); err != nil {
		return nil, err
	}
	return stats, nil
}

// CountRowsBy groups a table by one column, for the aggregate breakdowns in
// the summary report.
func (db *DB) CountRowsBy(t Table, column string) (map[string]int, error) {
	if !t.hasColumn(column) {
		return nil, ErrUnknownColumn
	}
	rows, err := db.Query("SELECT " + column + ", COUNT(*) FROM " + t.Name + " GROUP BY " + column)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, err
		}
		counts[key] = n
	}
	return counts, rows.Err()
}
