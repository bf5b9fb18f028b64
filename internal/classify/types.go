package classify

// UnassignedRoom is the display bucket for controls without a resolvable room.
const UnassignedRoom = "unassigned"

// typeLabels maps miniserver control type tags to readable labels.
//
// The table covers the control types emitted by Gen 1 and Gen 2 firmware.
// It is deliberately not exhaustive: unrecognised tags label as themselves,
// so a firmware update never breaks classification.
var typeLabels = map[string]string{
	// Lighting and outputs
	"Switch":            "Switch",
	"Pushbutton":        "Push Button",
	"Dimmer":            "Dimmer",
	"LightController":   "Light Controller",
	"LightControllerV2": "Light Controller V2",
	"ColorPicker":       "RGB Colour Picker",

	// Blinds and shading
	"Jalousie": "Blind/Shutter",
	"Gate":     "Motorised Gate",
	"Window":   "Motorised Window",
	"Blind":    "Curtain",

	// Climate
	"IRoomController":   "Room Climate Controller",
	"IRoomControllerV2": "Room Climate Controller V2",
	"Heatmixer":         "Heating Mixer",

	// Multimedia
	"AudioZone":   "Audio Zone",
	"MediaClient": "Media Client",
	"MediaServer": "Media Server",

	// Alarms and security
	"Alarm":      "Alarm",
	"AlarmClock": "Alarm Clock",
	"Tracker":    "Tracker",
	"Presence":   "Presence Detector",

	// Metering
	"Meter":         "Meter",
	"EnergyMonitor": "Energy Monitor",

	// Read-only states
	"InfoOnlyDigital": "Digital State",
	"InfoOnlyAnalog":  "Analogue State",
	"InfoOnlyText":    "Text State",

	// Automation
	"TimedSwitch":   "Timed Switch",
	"UpDownDigital": "Digital Counter",
	"Webpage":       "Web Page",
	"MessageCenter": "Message Centre",

	// Other
	"Intercom":           "Intercom",
	"CentralVentilation": "Central Ventilation",
	"SmokeAlarm":         "Smoke Detector",
	"Sauna":              "Sauna",
	"Pool":               "Pool",
}

// TypeLabel returns the readable label for a control type tag.
// Unrecognised tags are returned verbatim.
func TypeLabel(tag string) string {
	if label, ok := typeLabels[tag]; ok {
		return label
	}
	return tag
}
