package theme

import "strings"

// AccentColor is returned by TechColor for unknown technologies.
const AccentColor = "accent"

var techColors = map[string]string{
	"Node.js":    "#339933",
	"TypeScript": "#3178c6",
	"JavaScript": "#f7df1e",
	"MongoDB":    "#47a248",
	"Docker":     "#2496ed",
	"AWS":        "#ff9900",
	"PostgreSQL": "#4169e1",
	"NestJS":     "#e0234e",
	"Express":    "#000000",
	"Redis":      "#dc382d",
	"GraphQL":    "#e10098",
	"React":      "#61dafb",
	"Vue":        "#4fc08d",
	"Svelte":     "#ff3e00",
	"Python":     "#3776ab",
	"Go":         "#00add8",
	"Rust":       "#000000",
	"Java":       "#007396",
	"Kubernetes": "#326ce5",
	"Git":        "#f05032",
	"Linux":      "#fcc624",
	"MySQL":      "#4479a1",
	"Nginx":      "#009639",
	"Firebase":   "#ffca28",
	"Vercel":     "#000000",
	"Next.js":    "#000000",
	"Tailwind":   "#06b6d4",
}

var techIcons = map[string]string{
	"Node.js":    "JS",
	"TypeScript": "TS",
	"JavaScript": "JS",
	"MongoDB":    "DB",
	"Docker":     "DK",
	"AWS":        "AWS",
	"PostgreSQL": "PG",
	"NestJS":     "NS",
	"Express":    "EX",
	"Redis":      "RD",
	"GraphQL":    "GQL",
	"React":      "RE",
	"Vue":        "VU",
	"Svelte":     "SV",
	"Python":     "PY",
	"Go":         "GO",
	"Rust":       "RS",
	"Java":       "JV",
	"Kubernetes": "K8s",
	"Git":        "GIT",
	"Linux":      "LX",
	"MySQL":      "SQL",
	"Nginx":      "NX",
	"Firebase":   "FB",
	"Vercel":     "VC",
	"Next.js":    "NX",
	"Tailwind":   "TW",
}

// TechColor returns the brand colour of a technology, or AccentColor.
func TechColor(name string) string {
	if c, ok := techColors[name]; ok {
		return c
	}
	return AccentColor
}

// TechIcon returns the short label of a technology. Unknown names use their
// first two characters, upper-cased.
func TechIcon(name string) string {
	if icon, ok := techIcons[name]; ok {
		return icon
	}
	r := []rune(name)
	if len(r) > 2 {
		r = r[:2]
	}
	return strings.ToUpper(string(r))
}
