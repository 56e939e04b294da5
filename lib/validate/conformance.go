package validate

import (
	"fmt"
	"sort"

	"gitlab.mdcatapult.io/informatics/software-engineering/annotation-validation/lib/schema"
)

// CheckConformance compares the features a split actually populates with
// the features its declared tasks require. It runs at split granularity:
// a required feature empty across the entire split is an error, a
// populated feature no declared task implies is a warning. Tasks served
// by a different schema kind than the split's records are skipped here;
// they are checked against their own splits.
func CheckConformance(split string, kind schema.Kind, records []schema.Record, tasks []schema.Task) []Finding {
	tally := make(map[string]int)
	for _, rec := range records {
		for _, feature := range rec.PopulatedFeatures() {
			tally[feature]++
		}
	}

	required := make(map[string][]schema.Task)
	for _, task := range tasks {
		if task.SchemaKind() != kind {
			continue
		}
		for _, feature := range task.RequiredFeatures() {
			required[feature] = append(required[feature], task)
		}
	}

	requiredFeatures := make([]string, 0, len(required))
	for feature := range required {
		requiredFeatures = append(requiredFeatures, feature)
	}
	sort.Strings(requiredFeatures)
	populatedFeatures := make([]string, 0, len(tally))
	for feature := range tally {
		populatedFeatures = append(populatedFeatures, feature)
	}
	sort.Strings(populatedFeatures)

	var findings []Finding
	for _, feature := range requiredFeatures {
		if tally[feature] > 0 {
			continue
		}
		findings = append(findings, Finding{
			Severity:  Error,
			Component: ComponentConformance,
			Split:     split,
			ID:        feature,
			Message:   fmt.Sprintf("feature %q required by declared task %s is empty across the whole split", feature, required[feature][0]),
		})
	}
	for _, feature := range populatedFeatures {
		if _, ok := required[feature]; ok {
			continue
		}
		findings = append(findings, Finding{
			Severity:  Warning,
			Component: ComponentConformance,
			Split:     split,
			ID:        feature,
			Message:   fmt.Sprintf("feature %q is populated in %d records but no declared task implies it", feature, tally[feature]),
		})
	}
	return findings
}
