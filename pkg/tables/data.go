package tables

// SizeOrder lists conductor sizes from smallest to largest, AWG first then
// kcmil. EGC upsizing steps walk this list.
var SizeOrder = []string{
	"#14", "#12", "#10", "#8", "#6", "#4", "#3", "#2", "#1",
	"1/0", "2/0", "3/0", "4/0",
	"250", "300", "350", "400", "500", "600",
}

// ampacityKey identifies one column of the 310.16-style ampacity table.
type ampacityKey struct {
	Material   string
	Insulation string
	TempC      int
}

// Base ampacities in amperes, keyed by (material, insulation, temperature
// column) then conductor size. Values follow NEC 310.16.
var ampacityData = map[ampacityKey]map[string]float64{
	{"CU", "THHN", 60}: {
		"#14": 15, "#12": 20, "#10": 30, "#8": 40, "#6": 55, "#4": 70,
		"#3": 85, "#2": 95, "#1": 110, "1/0": 125, "2/0": 145, "3/0": 165,
		"4/0": 195, "250": 215, "300": 240, "350": 260, "400": 280,
		"500": 320, "600": 350,
	},
	{"CU", "THHN", 75}: {
		"#14": 20, "#12": 25, "#10": 35, "#8": 50, "#6": 65, "#4": 85,
		"#3": 100, "#2": 115, "#1": 130, "1/0": 150, "2/0": 175, "3/0": 200,
		"4/0": 230, "250": 255, "300": 285, "350": 310, "400": 335,
		"500": 380, "600": 420,
	},
	{"CU", "THHN", 90}: {
		"#14": 25, "#12": 30, "#10": 40, "#8": 55, "#6": 75, "#4": 95,
		"#3": 110, "#2": 130, "#1": 145, "1/0": 170, "2/0": 195, "3/0": 225,
		"4/0": 260, "250": 290, "300": 320, "350": 350, "400": 380,
		"500": 430, "600": 475,
	},
	{"AL", "XHHW-2", 60}: {
		"#12": 15, "#10": 25, "#8": 35, "#6": 40, "#4": 55, "#3": 65,
		"#2": 75, "#1": 85, "1/0": 100, "2/0": 115, "3/0": 130, "4/0": 150,
		"250": 170, "300": 195, "350": 210, "400": 225, "500": 260,
		"600": 285,
	},
	{"AL", "XHHW-2", 75}: {
		"#12": 20, "#10": 30, "#8": 40, "#6": 50, "#4": 65, "#3": 75,
		"#2": 90, "#1": 100, "1/0": 120, "2/0": 135, "3/0": 155, "4/0": 180,
		"250": 205, "300": 230, "350": 250, "400": 270, "500": 310,
		"600": 340,
	},
	{"AL", "XHHW-2", 90}: {
		"#12": 25, "#10": 35, "#8": 45, "#6": 55, "#4": 75, "#3": 85,
		"#2": 100, "#1": 115, "1/0": 135, "2/0": 150, "3/0": 175, "4/0": 205,
		"250": 230, "300": 260, "350": 280, "400": 305, "500": 350,
		"600": 385,
	},
}

// Conductor outside diameters in inches for THHN-class insulation, used for
// raceway fill area.
var conductorODData = map[string]float64{
	"#14": 0.111, "#12": 0.130, "#10": 0.164, "#8": 0.216, "#6": 0.254,
	"#4": 0.324, "#3": 0.352, "#2": 0.384, "#1": 0.446,
	"1/0": 0.486, "2/0": 0.532, "3/0": 0.584, "4/0": 0.642,
	"250": 0.711, "300": 0.766, "350": 0.817, "400": 0.864,
	"500": 0.949, "600": 1.051,
}

// EMT internal cross-section areas in square inches by trade size.
var racewayAreaData = map[float64]float64{
	0.5:  0.304,
	0.75: 0.533,
	1.0:  0.864,
	1.25: 1.496,
	1.5:  2.036,
	2.0:  3.356,
	2.5:  5.858,
	3.0:  8.846,
	3.5:  11.545,
	4.0:  14.753,
}

// egcRow is one row of the 250.122-style equipment grounding table: the
// largest OCPD rating the row covers, and the copper/aluminum sizes.
type egcRow struct {
	OCPDMaxA float64
	CuSize   string
	AlSize   string
}

// Rows are ordered by ascending OCPD limit; selection takes the first row
// whose limit covers the rating.
var egcData = []egcRow{
	{15, "#14", "#12"},
	{20, "#12", "#10"},
	{60, "#10", "#8"},
	{100, "#8", "#6"},
	{200, "#6", "#4"},
	{300, "#4", "#2"},
	{400, "#3", "#1"},
	{500, "#2", "1/0"},
	{600, "#1", "2/0"},
	{800, "1/0", "3/0"},
	{1000, "2/0", "4/0"},
	{1200, "3/0", "250"},
	{1600, "4/0", "350"},
	{2000, "250", "400"},
	{2500, "350", "600"},
	{3000, "400", "600"},
}

// DC resistance in ohms per 1000 ft at 75 C.
var resistanceData = map[string]map[string]float64{
	"CU": {
		"#14": 3.14, "#12": 1.98, "#10": 1.24, "#8": 0.778, "#6": 0.491,
		"#4": 0.308, "#3": 0.245, "#2": 0.194, "#1": 0.154,
		"1/0": 0.122, "2/0": 0.097, "3/0": 0.077, "4/0": 0.061,
		"250": 0.052, "300": 0.043, "350": 0.037, "400": 0.033,
		"500": 0.028, "600": 0.023,
	},
	"AL": {
		"#12": 3.19, "#10": 1.99, "#8": 1.26, "#6": 0.791, "#4": 0.497,
		"#3": 0.395, "#2": 0.313, "#1": 0.249,
		"1/0": 0.197, "2/0": 0.156, "3/0": 0.124, "4/0": 0.098,
		"250": 0.082, "300": 0.069, "350": 0.059, "400": 0.051,
		"500": 0.041, "600": 0.034,
	},
}

// Typical reactance in ohms per 1000 ft by raceway type.
var reactanceData = map[string]float64{
	"EMT": 0.085,
	"PVC": 0.065,
	"RMC": 0.090,
}

// Insulation spellings accepted on input, mapped to table keys.
var insulationAliases = map[string]string{
	"THHN/THWN-2": "THHN",
	"THWN-2":      "THHN",
	"THHN2":       "THHN",
	"XHHW2":       "XHHW-2",
}
