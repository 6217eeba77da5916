package keyboard

// Virtual-key codes. Gaps in the numeric range are reserved or unassigned
// and are not recognized.
const (
	LeftButton         VK = 0x01
	RightButton        VK = 0x02
	Cancel             VK = 0x03
	MiddleButton       VK = 0x04
	ExtraButton1       VK = 0x05
	ExtraButton2       VK = 0x06
	Back               VK = 0x08
	Tab                VK = 0x09
	Clear              VK = 0x0C
	Return             VK = 0x0D
	Shift              VK = 0x10
	Control            VK = 0x11
	Menu               VK = 0x12
	Pause              VK = 0x13
	CapsLock           VK = 0x14
	Hangul             VK = 0x15
	Junja              VK = 0x17
	Final              VK = 0x18
	Kanji              VK = 0x19
	Escape             VK = 0x1B
	Convert            VK = 0x1C
	NonConvert         VK = 0x1D
	Accept             VK = 0x1E
	ModeChange         VK = 0x1F
	Space              VK = 0x20
	Prior              VK = 0x21
	Next               VK = 0x22
	End                VK = 0x23
	Home               VK = 0x24
	Left               VK = 0x25
	Up                 VK = 0x26
	Right              VK = 0x27
	Down               VK = 0x28
	Select             VK = 0x29
	Print              VK = 0x2A
	Execute            VK = 0x2B
	Snapshot           VK = 0x2C
	Insert             VK = 0x2D
	Delete             VK = 0x2E
	Help               VK = 0x2F
	N0                 VK = 0x30
	N1                 VK = 0x31
	N2                 VK = 0x32
	N3                 VK = 0x33
	N4                 VK = 0x34
	N5                 VK = 0x35
	N6                 VK = 0x36
	N7                 VK = 0x37
	N8                 VK = 0x38
	N9                 VK = 0x39
	A                  VK = 0x41
	B                  VK = 0x42
	C                  VK = 0x43
	D                  VK = 0x44
	E                  VK = 0x45
	F                  VK = 0x46
	G                  VK = 0x47
	H                  VK = 0x48
	I                  VK = 0x49
	J                  VK = 0x4A
	K                  VK = 0x4B
	L                  VK = 0x4C
	M                  VK = 0x4D
	N                  VK = 0x4E
	O                  VK = 0x4F
	P                  VK = 0x50
	Q                  VK = 0x51
	R                  VK = 0x52
	S                  VK = 0x53
	T                  VK = 0x54
	U                  VK = 0x55
	V                  VK = 0x56
	W                  VK = 0x57
	X                  VK = 0x58
	Y                  VK = 0x59
	Z                  VK = 0x5A
	LeftWindows        VK = 0x5B
	RightWindows       VK = 0x5C
	Application        VK = 0x5D
	Sleep              VK = 0x5F
	Numpad0            VK = 0x60
	Numpad1            VK = 0x61
	Numpad2            VK = 0x62
	Numpad3            VK = 0x63
	Numpad4            VK = 0x64
	Numpad5            VK = 0x65
	Numpad6            VK = 0x66
	Numpad7            VK = 0x67
	Numpad8            VK = 0x68
	Numpad9            VK = 0x69
	Multiply           VK = 0x6A
	Add                VK = 0x6B
	Separator          VK = 0x6C
	Subtract           VK = 0x6D
	Decimal            VK = 0x6E
	Divide             VK = 0x6F
	F1                 VK = 0x70
	F2                 VK = 0x71
	F3                 VK = 0x72
	F4                 VK = 0x73
	F5                 VK = 0x74
	F6                 VK = 0x75
	F7                 VK = 0x76
	F8                 VK = 0x77
	F9                 VK = 0x78
	F10                VK = 0x79
	F11                VK = 0x7A
	F12                VK = 0x7B
	F13                VK = 0x7C
	F14                VK = 0x7D
	F15                VK = 0x7E
	F16                VK = 0x7F
	F17                VK = 0x80
	F18                VK = 0x81
	F19                VK = 0x82
	F20                VK = 0x83
	F21                VK = 0x84
	F22                VK = 0x85
	F23                VK = 0x86
	F24                VK = 0x87
	NumLock            VK = 0x90
	ScrollLock         VK = 0x91
	FujitsuJisho       VK = 0x92
	FujitsuMasshou     VK = 0x93
	FujitsuTouroku     VK = 0x94
	FujitsuLoya        VK = 0x95
	FujitsuRoya        VK = 0x96
	LeftShift          VK = 0xA0
	RightShift         VK = 0xA1
	LeftControl        VK = 0xA2
	RightControl       VK = 0xA3
	LeftMenu           VK = 0xA4
	RightMenu          VK = 0xA5
	BrowserBack        VK = 0xA6
	BrowserForward     VK = 0xA7
	BrowserRefresh     VK = 0xA8
	BrowserStop        VK = 0xA9
	BrowserSearch      VK = 0xAA
	BrowserFavorites   VK = 0xAB
	BrowserHome        VK = 0xAC
	VolumeMute         VK = 0xAD
	VolumeDown         VK = 0xAE
	VolumeUp           VK = 0xAF
	MediaNextTrack     VK = 0xB0
	MediaPrevTrack     VK = 0xB1
	MediaStop          VK = 0xB2
	MediaPlayPause     VK = 0xB3
	LaunchMail         VK = 0xB4
	LaunchMediaSelect  VK = 0xB5
	LaunchApplication1 VK = 0xB6
	LaunchApplication2 VK = 0xB7
	OEM1               VK = 0xBA
	OEMPlus            VK = 0xBB
	OEMComma           VK = 0xBC
	OEMMinus           VK = 0xBD
	OEMPeriod          VK = 0xBE
	OEM2               VK = 0xBF
	OEM3               VK = 0xC0
	OEM4               VK = 0xDB
	OEM5               VK = 0xDC
	OEM6               VK = 0xDD
	OEM7               VK = 0xDE
	OEM8               VK = 0xDF
	OEMAX              VK = 0xE1
	OEM102             VK = 0xE2
	ICOHelp            VK = 0xE3
	ICO00              VK = 0xE4
	ProcessKey         VK = 0xE5
	ICOClear           VK = 0xE6
	Packet             VK = 0xE7
	OEMReset           VK = 0xE9
	OEMJump            VK = 0xEA
	OEMPA1             VK = 0xEB
	OEMPA2             VK = 0xEC
	OEMPA3             VK = 0xED
	OEMWSCtrl          VK = 0xEE
	OEMCUSel           VK = 0xEF
	OEMATTN            VK = 0xF0
	OEMFinish          VK = 0xF1
	OEMCopy            VK = 0xF2
	OEMAuto            VK = 0xF3
	OEMENLW            VK = 0xF4
	OEMBackTab         VK = 0xF5
	ATTN               VK = 0xF6
	CRSel              VK = 0xF7
	EXSel              VK = 0xF8
	EREOF              VK = 0xF9
	Play               VK = 0xFA
	Zoom               VK = 0xFB
	Noname             VK = 0xFC
	PA1                VK = 0xFD
	OEMClear           VK = 0xFE
)

var vkNames = map[VK]string{
	LeftButton:         "LeftButton",
	RightButton:        "RightButton",
	Cancel:             "Cancel",
	MiddleButton:       "MiddleButton",
	ExtraButton1:       "ExtraButton1",
	ExtraButton2:       "ExtraButton2",
	Back:               "Back",
	Tab:                "Tab",
	Clear:              "Clear",
	Return:             "Return",
	Shift:              "Shift",
	Control:            "Control",
	Menu:               "Menu",
	Pause:              "Pause",
	CapsLock:           "CapsLock",
	Hangul:             "Hangul",
	Junja:              "Junja",
	Final:              "Final",
	Kanji:              "Kanji",
	Escape:             "Escape",
	Convert:            "Convert",
	NonConvert:         "NonConvert",
	Accept:             "Accept",
	ModeChange:         "ModeChange",
	Space:              "Space",
	Prior:              "Prior",
	Next:               "Next",
	End:                "End",
	Home:               "Home",
	Left:               "Left",
	Up:                 "Up",
	Right:              "Right",
	Down:               "Down",
	Select:             "Select",
	Print:              "Print",
	Execute:            "Execute",
	Snapshot:           "Snapshot",
	Insert:             "Insert",
	Delete:             "Delete",
	Help:               "Help",
	N0:                 "N0",
	N1:                 "N1",
	N2:                 "N2",
	N3:                 "N3",
	N4:                 "N4",
	N5:                 "N5",
	N6:                 "N6",
	N7:                 "N7",
	N8:                 "N8",
	N9:                 "N9",
	A:                  "A",
	B:                  "B",
	C:                  "C",
	D:                  "D",
	E:                  "E",
	F:                  "F",
	G:                  "G",
	H:                  "H",
	I:                  "I",
	J:                  "J",
	K:                  "K",
	L:                  "L",
	M:                  "M",
	N:                  "N",
	O:                  "O",
	P:                  "P",
	Q:                  "Q",
	R:                  "R",
	S:                  "S",
	T:                  "T",
	U:                  "U",
	V:                  "V",
	W:                  "W",
	X:                  "X",
	Y:                  "Y",
	Z:                  "Z",
	LeftWindows:        "LeftWindows",
	RightWindows:       "RightWindows",
	Application:        "Application",
	Sleep:              "Sleep",
	Numpad0:            "Numpad0",
	Numpad1:            "Numpad1",
	Numpad2:            "Numpad2",
	Numpad3:            "Numpad3",
	Numpad4:            "Numpad4",
	Numpad5:            "Numpad5",
	Numpad6:            "Numpad6",
	Numpad7:            "Numpad7",
	Numpad8:            "Numpad8",
	Numpad9:            "Numpad9",
	Multiply:           "Multiply",
	Add:                "Add",
	Separator:          "Separator",
	Subtract:           "Subtract",
	Decimal:            "Decimal",
	Divide:             "Divide",
	F1:                 "F1",
	F2:                 "F2",
	F3:                 "F3",
	F4:                 "F4",
	F5:                 "F5",
	F6:                 "F6",
	F7:                 "F7",
	F8:                 "F8",
	F9:                 "F9",
	F10:                "F10",
	F11:                "F11",
	F12:                "F12",
	F13:                "F13",
	F14:                "F14",
	F15:                "F15",
	F16:                "F16",
	F17:                "F17",
	F18:                "F18",
	F19:                "F19",
	F20:                "F20",
	F21:                "F21",
	F22:                "F22",
	F23:                "F23",
	F24:                "F24",
	NumLock:            "NumLock",
	ScrollLock:         "ScrollLock",
	FujitsuJisho:       "FujitsuJisho",
	FujitsuMasshou:     "FujitsuMasshou",
	FujitsuTouroku:     "FujitsuTouroku",
	FujitsuLoya:        "FujitsuLoya",
	FujitsuRoya:        "FujitsuRoya",
	LeftShift:          "LeftShift",
	RightShift:         "RightShift",
	LeftControl:        "LeftControl",
	RightControl:       "RightControl",
	LeftMenu:           "LeftMenu",
	RightMenu:          "RightMenu",
	BrowserBack:        "BrowserBack",
	BrowserForward:     "BrowserForward",
	BrowserRefresh:     "BrowserRefresh",
	BrowserStop:        "BrowserStop",
	BrowserSearch:      "BrowserSearch",
	BrowserFavorites:   "BrowserFavorites",
	BrowserHome:        "BrowserHome",
	VolumeMute:         "VolumeMute",
	VolumeDown:         "VolumeDown",
	VolumeUp:           "VolumeUp",
	MediaNextTrack:     "MediaNextTrack",
	MediaPrevTrack:     "MediaPrevTrack",
	MediaStop:          "MediaStop",
	MediaPlayPause:     "MediaPlayPause",
	LaunchMail:         "LaunchMail",
	LaunchMediaSelect:  "LaunchMediaSelect",
	LaunchApplication1: "LaunchApplication1",
	LaunchApplication2: "LaunchApplication2",
	OEM1:               "OEM1",
	OEMPlus:            "OEMPlus",
	OEMComma:           "OEMComma",
	OEMMinus:           "OEMMinus",
	OEMPeriod:          "OEMPeriod",
	OEM2:               "OEM2",
	OEM3:               "OEM3",
	OEM4:               "OEM4",
	OEM5:               "OEM5",
	OEM6:               "OEM6",
	OEM7:               "OEM7",
	OEM8:               "OEM8",
	OEMAX:              "OEMAX",
	OEM102:             "OEM102",
	ICOHelp:            "ICOHelp",
	ICO00:              "ICO00",
	ProcessKey:         "ProcessKey",
	ICOClear:           "ICOClear",
	Packet:             "Packet",
	OEMReset:           "OEMReset",
	OEMJump:            "OEMJump",
	OEMPA1:             "OEMPA1",
	OEMPA2:             "OEMPA2",
	OEMPA3:             "OEMPA3",
	OEMWSCtrl:          "OEMWSCtrl",
	OEMCUSel:           "OEMCUSel",
	OEMATTN:            "OEMATTN",
	OEMFinish:          "OEMFinish",
	OEMCopy:            "OEMCopy",
	OEMAuto:            "OEMAuto",
	OEMENLW:            "OEMENLW",
	OEMBackTab:         "OEMBackTab",
	ATTN:               "ATTN",
	CRSel:              "CRSel",
	EXSel:              "EXSel",
	EREOF:              "EREOF",
	Play:               "Play",
	Zoom:               "Zoom",
	Noname:             "Noname",
	PA1:                "PA1",
	OEMClear:           "OEMClear",
}
