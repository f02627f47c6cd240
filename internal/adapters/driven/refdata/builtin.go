package refdata

import (
	"time"

	"github.com/meridian-labs/disclose-cli/internal/core/domain"
)

// Builtin returns the bundled reference data set: filers with notable
// cybersecurity disclosure histories, their ticker symbols, historical
// renames, and subsidiary relationships.
func Builtin() *Set {
	altabaRename := mustDate("2017-06-16")

	aliases := []domain.AliasRecord{
		{Name: "UnitedHealth Group", EntityID: "0000731766"},
		{Name: "UnitedHealth Group Inc", EntityID: "0000731766"},
		{Name: "UnitedHealth Group Incorporated", EntityID: "0000731766"},
		{Name: "UnitedHealth", EntityID: "0000731766"},

		{Name: "Target", EntityID: "0000027419"},
		{Name: "Target Corporation", EntityID: "0000027419"},
		{Name: "Target Corp", EntityID: "0000027419"},

		{Name: "Capital One", EntityID: "0000927628"},
		{Name: "Capital One Financial", EntityID: "0000927628"},
		{Name: "Capital One Financial Corp", EntityID: "0000927628"},
		{Name: "Capital One Financial Corporation", EntityID: "0000927628"},

		{Name: "Equifax", EntityID: "0000033185"},
		{Name: "Equifax Inc", EntityID: "0000033185"},

		{Name: "Marriott", EntityID: "0001048286"},
		{Name: "Marriott International", EntityID: "0001048286"},
		{Name: "Marriott International Inc", EntityID: "0001048286"},

		{Name: "Home Depot", EntityID: "0000354950"},
		{Name: "Home Depot Inc", EntityID: "0000354950"},
		{Name: "The Home Depot", EntityID: "0000354950"},

		{Name: "MGM Resorts", EntityID: "0000789570"},
		{Name: "MGM Resorts International", EntityID: "0000789570"},
		{Name: "MGM Resorts International Inc", EntityID: "0000789570"},

		{Name: "SolarWinds", EntityID: "0001739942"},
		{Name: "SolarWinds Corporation", EntityID: "0001739942"},
		{Name: "SolarWinds Corp", EntityID: "0001739942"},

		{Name: "T-Mobile", EntityID: "0001283699"},
		{Name: "T-Mobile US", EntityID: "0001283699"},
		{Name: "T-Mobile US Inc", EntityID: "0001283699"},
		{Name: "T-Mobile USA", EntityID: "0001283699"},
		{Name: "TMobile", EntityID: "0001283699"},

		{Name: "Uber", EntityID: "0001543151"},
		{Name: "Uber Technologies", EntityID: "0001543151"},
		{Name: "Uber Technologies Inc", EntityID: "0001543151"},

		{Name: "Sony", EntityID: "0000313838"},
		{Name: "Sony Group", EntityID: "0000313838"},
		{Name: "Sony Group Corp", EntityID: "0000313838"},
		{Name: "Sony Group Corporation", EntityID: "0000313838"},

		{Name: "First American", EntityID: "0001472787"},
		{Name: "First American Financial", EntityID: "0001472787"},
		{Name: "First American Financial Corp", EntityID: "0001472787"},
		{Name: "First American Financial Corporation", EntityID: "0001472787"},

		// Yahoo renamed to Altaba in 2017; the canonical id is unchanged.
		{Name: "Yahoo", EntityID: "0001011006", SupersededBy: "Altaba Inc.", RenameDate: &altabaRename},
		{Name: "Yahoo Inc", EntityID: "0001011006", SupersededBy: "Altaba Inc.", RenameDate: &altabaRename},
		{Name: "Yahoo!", EntityID: "0001011006", SupersededBy: "Altaba Inc.", RenameDate: &altabaRename},
		{Name: "Yahoo! Inc", EntityID: "0001011006", SupersededBy: "Altaba Inc.", RenameDate: &altabaRename},
		{Name: "Altaba", EntityID: "0001011006"},
		{Name: "Altaba Inc", EntityID: "0001011006"},
	}

	tickers := map[string]string{
		"UNH":  "0000731766",
		"TGT":  "0000027419",
		"COF":  "0000927628",
		"EFX":  "0000033185",
		"MAR":  "0001048286",
		"HD":   "0000354950",
		"MGM":  "0000789570",
		"SWI":  "0001739942",
		"TMUS": "0001283699",
		"UBER": "0001543151",
		"SONY": "0000313838",
		"FAF":  "0001472787",
	}

	subsidiaries := []domain.SubsidiaryRecord{
		{
			LegalName: "Change Healthcare",
			Aliases: []string{
				"Change Healthcare Inc.",
				"Change Healthcare, Inc.",
				"Change Healthcare LLC",
			},
			ParentEntityID: "0000731766",
			EffectiveFrom:  mustDate("2022-10-03"),
			Relationship:   domain.RelationshipSubsidiary,
			Notes:          "Acquired from private equity; cybersecurity incidents appear in parent filings",
		},
		{
			LegalName: "Sony Pictures",
			Aliases: []string{
				"Sony Pictures Entertainment",
				"Sony Pictures Entertainment Inc.",
				"Sony Pictures Inc.",
			},
			ParentEntityID: "0000313838",
			EffectiveFrom:  mustDate("1989-01-01"),
			Relationship:   domain.RelationshipDivision,
			Notes:          "Operating division; the 2014 breach was at Sony Pictures",
		},
		{
			LegalName: "Starwood Hotels & Resorts",
			Aliases: []string{
				"Starwood",
				"Starwood Hotels",
				"Starwood Resorts",
			},
			ParentEntityID: "0001048286",
			EffectiveFrom:  mustDate("2016-09-23"),
			Relationship:   domain.RelationshipSubsidiary,
			Notes:          "Acquired in 2016; the reservation database breach began pre-acquisition",
		},
	}

	return New(aliases, tickers, subsidiaries)
}

func mustDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}
