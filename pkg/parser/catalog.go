package parser

import "strings"

// FunctionCategory classifies history functions by what they compute.
type FunctionCategory string

// FunctionCategory constants for history function classification.
const (
	CategoryAggregate  FunctionCategory = "aggregate"
	CategoryHistory    FunctionCategory = "history"
	CategoryTrend      FunctionCategory = "trend"
	CategoryPrediction FunctionCategory = "prediction"
	CategoryLog        FunctionCategory = "log"
	CategoryBitwise    FunctionCategory = "bitwise"
)

// FunctionInfo describes a history function for completions and help.
type FunctionInfo struct {
	Name        string           // Function name (e.g., "avg")
	Signature   string           // Parameter synopsis
	Description string           // Brief description
	Category    FunctionCategory // Function category
}

// HistoryCatalog lists the well-known history functions. The parser accepts
// any lowercase name; the catalog only feeds completions and descriptions.
var HistoryCatalog = []FunctionInfo{
	// Aggregates over a period
	{Name: "avg", Signature: "avg(/host/key,(sec|#num)<:time shift>)", Description: "Average value over the period", Category: CategoryAggregate},
	{Name: "count", Signature: `count(/host/key,(sec|#num)<:time shift>,<operator>,<pattern>)`, Description: "Number of values matching the pattern", Category: CategoryAggregate},
	{Name: "countunique", Signature: `countunique(/host/key,(sec|#num)<:time shift>,<operator>,<pattern>)`, Description: "Number of unique values matching the pattern", Category: CategoryAggregate},
	{Name: "kurtosis", Signature: "kurtosis(/host/key,(sec|#num)<:time shift>)", Description: "Tailedness of the value distribution", Category: CategoryAggregate},
	{Name: "mad", Signature: "mad(/host/key,(sec|#num)<:time shift>)", Description: "Median absolute deviation", Category: CategoryAggregate},
	{Name: "max", Signature: "max(/host/key,(sec|#num)<:time shift>)", Description: "Highest value over the period", Category: CategoryAggregate},
	{Name: "min", Signature: "min(/host/key,(sec|#num)<:time shift>)", Description: "Lowest value over the period", Category: CategoryAggregate},
	{Name: "percentile", Signature: "percentile(/host/key,(sec|#num)<:time shift>,<percentage>)", Description: "Percentile of the values", Category: CategoryAggregate},
	{Name: "skewness", Signature: "skewness(/host/key,(sec|#num)<:time shift>)", Description: "Asymmetry of the value distribution", Category: CategoryAggregate},
	{Name: "stddevpop", Signature: "stddevpop(/host/key,(sec|#num)<:time shift>)", Description: "Population standard deviation", Category: CategoryAggregate},
	{Name: "stddevsamp", Signature: "stddevsamp(/host/key,(sec|#num)<:time shift>)", Description: "Sample standard deviation", Category: CategoryAggregate},
	{Name: "sum", Signature: "sum(/host/key,(sec|#num)<:time shift>)", Description: "Sum of the values", Category: CategoryAggregate},
	{Name: "sumofsquares", Signature: "sumofsquares(/host/key,(sec|#num)<:time shift>)", Description: "Sum of squares of the values", Category: CategoryAggregate},
	{Name: "varpop", Signature: "varpop(/host/key,(sec|#num)<:time shift>)", Description: "Population variance", Category: CategoryAggregate},
	{Name: "varsamp", Signature: "varsamp(/host/key,(sec|#num)<:time shift>)", Description: "Sample variance", Category: CategoryAggregate},

	// Single values and state
	{Name: "change", Signature: "change(/host/key)", Description: "Difference between the last two values", Category: CategoryHistory},
	{Name: "changecount", Signature: `changecount(/host/key,(sec|#num)<:time shift>,<mode>)`, Description: "Number of changes between adjacent values", Category: CategoryHistory},
	{Name: "find", Signature: `find(/host/key,<(sec|#num)<:time shift>>,<operator>,<pattern>)`, Description: "Whether a value matches the pattern", Category: CategoryHistory},
	{Name: "first", Signature: "first(/host/key,sec<:time shift>)", Description: "First value of the period", Category: CategoryHistory},
	{Name: "fuzzytime", Signature: "fuzzytime(/host/key,sec)", Description: "Whether the item timestamp is close to server time", Category: CategoryHistory},
	{Name: "last", Signature: "last(/host/key,<#num<:time shift>>)", Description: "Most recent value", Category: CategoryHistory},
	{Name: "monodec", Signature: `monodec(/host/key,(sec|#num)<:time shift>,<mode>)`, Description: "Whether values decrease monotonically", Category: CategoryHistory},
	{Name: "monoinc", Signature: `monoinc(/host/key,(sec|#num)<:time shift>,<mode>)`, Description: "Whether values increase monotonically", Category: CategoryHistory},
	{Name: "nodata", Signature: `nodata(/host/key,sec,<mode>)`, Description: "Whether no data arrived during the period", Category: CategoryHistory},
	{Name: "rate", Signature: "rate(/host/key,sec<:time shift>)", Description: "Per-second increase of a counter", Category: CategoryHistory},

	// Trends
	{Name: "baselinedev", Signature: `baselinedev(/host/key,data period:time shift,season unit,num seasons)`, Description: "Deviations from the seasonal baseline", Category: CategoryTrend},
	{Name: "baselinewma", Signature: `baselinewma(/host/key,data period:time shift,season unit,num seasons)`, Description: "Seasonal baseline by weighted moving average", Category: CategoryTrend},
	{Name: "trendavg", Signature: "trendavg(/host/key,time period:time shift)", Description: "Average of trend values", Category: CategoryTrend},
	{Name: "trendcount", Signature: "trendcount(/host/key,time period:time shift)", Description: "Number of trend values", Category: CategoryTrend},
	{Name: "trendmax", Signature: "trendmax(/host/key,time period:time shift)", Description: "Maximum of trend values", Category: CategoryTrend},
	{Name: "trendmin", Signature: "trendmin(/host/key,time period:time shift)", Description: "Minimum of trend values", Category: CategoryTrend},
	{Name: "trendstl", Signature: `trendstl(/host/key,eval period:time shift,detection period,season,<deviations>,<devalg>,<s window>)`, Description: "Anomaly rate from STL decomposition", Category: CategoryTrend},
	{Name: "trendsum", Signature: "trendsum(/host/key,time period:time shift)", Description: "Sum of trend values", Category: CategoryTrend},

	// Prediction
	{Name: "forecast", Signature: `forecast(/host/key,(sec|#num)<:time shift>,time,<fit>,<mode>)`, Description: "Predicted value at a future time", Category: CategoryPrediction},
	{Name: "timeleft", Signature: `timeleft(/host/key,(sec|#num)<:time shift>,threshold,<fit>)`, Description: "Seconds until the threshold is reached", Category: CategoryPrediction},

	// Log items
	{Name: "logeventid", Signature: `logeventid(/host/key,<#num<:time shift>>,<pattern>)`, Description: "Whether the last event ID matches", Category: CategoryLog},
	{Name: "logseverity", Signature: "logseverity(/host/key,<#num<:time shift>>)", Description: "Severity of the last log entry", Category: CategoryLog},
	{Name: "logsource", Signature: `logsource(/host/key,<#num<:time shift>>,<pattern>)`, Description: "Whether the last log source matches", Category: CategoryLog},

	// Bitwise
	{Name: "bitand", Signature: "bitand(/host/key,mask)", Description: "Bitwise AND of the last value and a mask", Category: CategoryBitwise},
}

// LookupFunction returns the catalog entry for name.
func LookupFunction(name string) (FunctionInfo, bool) {
	for _, fn := range HistoryCatalog {
		if fn.Name == name {
			return fn, true
		}
	}
	return FunctionInfo{}, false
}

// GetFunctionsByCategory returns all functions in a category.
func GetFunctionsByCategory(category FunctionCategory) []FunctionInfo {
	var result []FunctionInfo
	for _, fn := range HistoryCatalog {
		if fn.Category == category {
			result = append(result, fn)
		}
	}
	return result
}

// SearchFunctions returns functions whose name starts with prefix.
// Function names are lowercase, so the prefix is lowercased first.
func SearchFunctions(prefix string) []FunctionInfo {
	if prefix == "" {
		return HistoryCatalog
	}

	prefix = strings.ToLower(prefix)
	var result []FunctionInfo
	for _, fn := range HistoryCatalog {
		if strings.HasPrefix(fn.Name, prefix) {
			result = append(result, fn)
		}
	}
	return result
}
