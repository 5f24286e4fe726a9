package config

import (
	"fmt"
)

// Validate checks the configuration for inputs that would corrupt the
// multi-year recurrences and fails fast on them. It returns non-fatal
// warnings alongside.
func (conf *Configuration) Validate() ([]string, error) {
	var warnings []string

	if len(conf.Properties) == 0 {
		return warnings, fmt.Errorf("configuration has no properties")
	}

	seenNames := make(map[string]bool)
	for i := range conf.Properties {
		p := &conf.Properties[i]
		if p.Name == "" {
			return warnings, fmt.Errorf("property %d has no name", i)
		}
		if seenNames[p.Name] {
			return warnings, fmt.Errorf("duplicate property name %q", p.Name)
		}
		seenNames[p.Name] = true

		if p.PurchasePrice <= 0 {
			return warnings, fmt.Errorf("property %s has non-positive purchase price %.2f", p.Name, p.PurchasePrice)
		}
		switch p.RentalType {
		case RentalTypeFurnished, RentalTypeUnfurnished:
		default:
			return warnings, fmt.Errorf("property %s has unknown rental type %q", p.Name, p.RentalType)
		}
		if err := p.Loan.Terms().Validate(); err != nil {
			return warnings, fmt.Errorf("property %s: %w", p.Name, err)
		}
		if p.Tax.MarginalRate < 0 || p.Tax.SocialChargesRate < 0 {
			return warnings, fmt.Errorf("property %s has negative tax rates", p.Name)
		}

		seenYears := make(map[int]bool)
		for _, record := range p.Expenses {
			if seenYears[record.Year] {
				return warnings, fmt.Errorf("property %s declares expense year %d twice", p.Name, record.Year)
			}
			seenYears[record.Year] = true
			if record.Year < p.StartYear() || record.Year > p.EndYear() {
				warnings = append(warnings, fmt.Sprintf(
					"property %s declares expenses for %d, outside its holding period %d-%d",
					p.Name, record.Year, p.StartYear(), p.EndYear()))
			}
		}
		if len(p.Expenses) == 0 {
			warnings = append(warnings, fmt.Sprintf("property %s declares no expense records", p.Name))
		}
	}

	for i := range conf.SCIs {
		sci := &conf.SCIs[i]
		if sci.Name == "" {
			return warnings, fmt.Errorf("SCI %d has no name", i)
		}
		switch sci.RentalType {
		case RentalTypeFurnished, RentalTypeUnfurnished:
		default:
			return warnings, fmt.Errorf("SCI %s has unknown rental type %q", sci.Name, sci.RentalType)
		}
		if len(sci.MemberPropertyIDs) == 0 {
			warnings = append(warnings, fmt.Sprintf("SCI %s has no member properties", sci.Name))
		}
		if _, err := conf.MembersOf(sci); err != nil {
			return warnings, err
		}
	}

	if conf.Target != nil {
		switch conf.Target.Kind {
		case "gain", "cashflow":
		default:
			return warnings, fmt.Errorf("unknown target kind %q", conf.Target.Kind)
		}
	}

	return warnings, nil
}
