package store

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/JonMunkholm/hrconsole/internal/grid"
)

var (
	firstNames = []string{"Ada", "Grace", "Linus", "Margaret", "Ken", "Barbara", "Dennis", "Frances", "Alan", "Radia",
		"Edsger", "Hedy", "Donald", "Joan", "Niklaus", "Sophie", "Tim", "Karen", "Bjarne", "Mary", "Zoë", "Søren"}
	lastNames = []string{"Lovelace", "Hopper", "Torvalds", "Hamilton", "Thompson", "Liskov", "Ritchie", "Allen", "Turing",
		"Perlman", "Dijkstra", "Lamarr", "Knuth", "Clarke", "Wirth", "Wilson", "Berners-Lee", "Spärck Jones", "Stroustrup", "Shaw"}
	departments   = []string{"Engineering", "Finance", "People", "Sales", "Support", "Legal", "R&D"}
	jobTitles     = []string{"Engineer", "Senior Engineer", "Analyst", "Manager", "Specialist", "Coordinator", "Director"}
	locations     = []string{"Amsterdam", "Berlin", "Copenhagen", "Lisbon", "Remote"}
	requestFields = []string{"address", "bank_account", "phone", "last_name", "emergency_contact"}
)

// DemoRows generates a deterministic HR data set for every built-in table.
// The same seed always yields the same rows.
func DemoRows(seed uint64) map[string][]grid.Row {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	base := time.Date(2015, time.January, 5, 0, 0, 0, 0, time.UTC)
	day := func(offset int) time.Time { return base.AddDate(0, 0, offset) }
	pick := func(list []string) string { return list[r.IntN(len(list))] }

	const employeeCount = 137
	names := make([]string, employeeCount)
	employees := make([]grid.Row, employeeCount)
	for i := range employees {
		first, last := pick(firstNames), pick(lastNames)
		names[i] = first + " " + last

		status := "active"
		switch n := r.IntN(20); {
		case n == 0:
			status = "terminated"
		case n < 3:
			status = "on_leave"
		}
		employment := "full_time"
		switch n := r.IntN(10); {
		case n == 0:
			employment = "contractor"
		case n < 3:
			employment = "part_time"
		}

		employees[i] = grid.Row{
			"id":              fmt.Sprintf("emp-%04d", i+1),
			"name":            names[i],
			"employee_number": fmt.Sprintf("E%05d", 10001+i),
			"email":           fmt.Sprintf("%s.%s%d@example.com", emailPart(first), emailPart(last), i+1),
			"phone":           fmt.Sprintf("+31 6 %04d %04d", r.IntN(10000), r.IntN(10000)),
			"job_title":       pick(jobTitles),
			"department":      pick(departments),
			"location":        pick(locations),
			"employment_type": employment,
			"start_date":      day(r.IntN(3650)),
			"salary":          float64(32000+r.IntN(90)*1000) + float64(r.IntN(100))/100,
			"currency":        "EUR",
			"status":          status,
		}
	}
	// Managers come from the first tenth of the list.
	for i, e := range employees {
		if i < employeeCount/10 {
			e["manager"] = nil
			continue
		}
		e["manager"] = names[r.IntN(employeeCount/10)]
	}

	contracts := make([]grid.Row, 0, employeeCount)
	for i, e := range employees {
		start := e["start_date"].(time.Time)
		kind := "permanent"
		var end any
		switch n := r.IntN(10); {
		case n < 2:
			kind = "fixed_term"
			end = start.AddDate(1+r.IntN(2), 0, 0)
		case n == 2:
			kind = "internship"
			end = start.AddDate(0, 6, 0)
		}
		status := "signed"
		if r.IntN(15) == 0 {
			status = "draft"
		} else if t, ok := end.(time.Time); ok && t.Before(day(3650)) {
			status = "expired"
		}
		hours := 40
		if e["employment_type"] == "part_time" {
			hours = 24 + 4*r.IntN(3)
		}
		contracts = append(contracts, grid.Row{
			"id":             fmt.Sprintf("con-%04d", i+1),
			"employee":       e["name"],
			"contract_type":  kind,
			"start_date":     start,
			"end_date":       end,
			"hours_per_week": hours,
			"salary":         e["salary"],
			"status":         status,
		})
	}

	leaveTypes := []string{"vacation", "sick", "parental", "unpaid"}
	decisions := []string{"pending", "approved", "approved", "rejected"}
	leave := make([]grid.Row, 64)
	for i := range leave {
		start := day(3300 + r.IntN(400))
		days := 1 + r.IntN(14)
		leave[i] = grid.Row{
			"id":         fmt.Sprintf("lv-%04d", i+1),
			"employee":   pick(names),
			"leave_type": pick(leaveTypes),
			"start_date": start,
			"end_date":   start.AddDate(0, 0, days-1),
			"days":       days,
			"approver":   names[r.IntN(employeeCount/10)],
			"status":     pick(decisions),
		}
	}

	requests := make([]grid.Row, 27)
	for i := range requests {
		field := pick(requestFields)
		requests[i] = grid.Row{
			"id":           fmt.Sprintf("req-%04d", i+1),
			"employee":     pick(names),
			"field":        field,
			"old_value":    fmt.Sprintf("old %s", strings.ReplaceAll(field, "_", " ")),
			"new_value":    fmt.Sprintf("new %s", strings.ReplaceAll(field, "_", " ")),
			"requested_at": day(3600 + r.IntN(60)),
			"status":       pick(decisions),
		}
	}

	ratings := []string{"exceeds", "meets", "meets", "below"}
	reviews := make([]grid.Row, 90)
	for i := range reviews {
		completed := r.IntN(4) != 0
		var completedAt any
		if completed {
			completedAt = day(3500 + r.IntN(150))
		}
		reviews[i] = grid.Row{
			"id":           fmt.Sprintf("rev-%04d", i+1),
			"employee":     pick(names),
			"reviewer":     names[r.IntN(employeeCount/10)],
			"period":       fmt.Sprintf("%d-H%d", 2024+r.IntN(2), 1+r.IntN(2)),
			"rating":       pick(ratings),
			"completed":    completed,
			"completed_at": completedAt,
		}
	}

	return map[string][]grid.Row{
		"employees":       employees,
		"contracts":       contracts,
		"leave":           leave,
		"update_requests": requests,
		"reviews":         reviews,
	}
}

func emailPart(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer(" ", "", "-", "", "ë", "e", "ø", "o", "ä", "a").Replace(s)
	return s
}
