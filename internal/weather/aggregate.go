package weather

// AggregateReadings combines provider readings into one Snapshot. Each numeric
// field is averaged over the providers that reported it; the condition is
// chosen by majority (first seen wins ties) and the first non-empty place
// name is kept.
func AggregateReadings(readings []ProviderReading) Snapshot {
	snap := Snapshot{Condition: ConditionUnknown}
	if len(readings) == 0 {
		return snap
	}

	var temp, humidity, wind mean
	conditionCounts := make(map[Condition]int)
	var conditionOrder []Condition

	for _, r := range readings {
		temp.add(r.TemperatureC)
		humidity.add(r.HumidityPct)
		wind.add(r.WindSpeedMS)

		if r.Condition != "" && r.Condition != ConditionUnknown {
			if conditionCounts[r.Condition] == 0 {
				conditionOrder = append(conditionOrder, r.Condition)
			}
			conditionCounts[r.Condition]++
		}
		if snap.Description == "" {
			snap.Description = r.Description
		}
		if snap.City == "" {
			snap.City = r.City
		}
		if snap.Country == "" {
			snap.Country = r.Country
		}
		snap.Providers = append(snap.Providers, r.ProviderName)
	}

	bestCount := 0
	for _, cond := range conditionOrder {
		if conditionCounts[cond] > bestCount {
			bestCount = conditionCounts[cond]
			snap.Condition = cond
		}
	}

	snap.TempC = temp.value()
	snap.Humidity = humidity.value()
	snap.WindSpeedMs = wind.value()
	return snap
}

type mean struct {
	sum float64
	n   int
}

func (m *mean) add(v *float64) {
	if v == nil {
		return
	}
	m.sum += *v
	m.n++
}

func (m mean) value() *float64 {
	if m.n == 0 {
		return nil
	}
	v := m.sum / float64(m.n)
	return &v
}
