package event

// eventNames labels event types in logs and metrics
var eventNames = map[EventType]string{
	EventTick:             "EventTick",
	EventBodyInserted:     "EventBodyInserted",
	EventBodyRemoved:      "EventBodyRemoved",
	EventBodyMerged:       "EventBodyMerged",
	EventPhotonsEmitted:   "EventPhotonsEmitted",
	EventPhotonsCleared:   "EventPhotonsCleared",
	EventFocusReassigned:  "EventFocusReassigned",
	EventNonFinite:        "EventNonFinite",
	EventScenarioLoaded:   "EventScenarioLoaded",
	EventTimeScaleChanged: "EventTimeScaleChanged",
}

// String implements fmt.Stringer
func (et EventType) String() string {
	if name, ok := eventNames[et]; ok {
		return name
	}
	return "EventUnknown"
}
