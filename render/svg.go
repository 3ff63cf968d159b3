package render

import (
	"fmt"
	"html"
	"html/template"
	"math"
	"strings"
)

const (
	svgWidth   = 640
	svgHeight  = 320
	svgPadding = 40
)

// SVG draws chart views as an inline SVG element. Placeholders and tables have no
// drawing and return "".
func SVG(v View) template.HTML {
	var b strings.Builder
	switch c := v.(type) {
	case SeriesChart:
		writeSeriesSVG(&b, c)
	case PieChart:
		writePieSVG(&b, c)
	default:
		return ""
	}
	return template.HTML(b.String())
}

func openSVG(b *strings.Builder, label string) {
	fmt.Fprintf(b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" role="img" aria-label="%s">`,
		svgWidth, svgHeight, html.EscapeString(label))
}

// seriesRange spans every numeric value and always includes zero, so bars have a
// baseline to grow from in either direction.
func seriesRange(c SeriesChart) (lo, hi float64) {
	for _, s := range c.Series {
		for _, v := range s.Values {
			n, ok := Number(v)
			if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
				continue
			}
			lo, hi = math.Min(lo, n), math.Max(hi, n)
		}
	}
	if hi == lo {
		hi = lo + 1
	}
	return lo, hi
}

func writeSeriesSVG(b *strings.Builder, c SeriesChart) {
	openSVG(b, string(c.Type)+" chart by "+c.Axis)
	plotW := float64(svgWidth - 2*svgPadding)
	plotH := float64(svgHeight - 2*svgPadding)
	lo, hi := seriesRange(c)
	n := len(c.Categories)
	slot := plotW / float64(n)

	// grid and axes
	for i := 0; i <= 4; i++ {
		y := float64(svgPadding) + plotH*float64(i)/4
		fmt.Fprintf(b, `<line x1="%d" y1="%.1f" x2="%d" y2="%.1f" stroke="#f0f0f0" stroke-dasharray="3 3"/>`,
			svgPadding, y, svgWidth-svgPadding, y)
		fmt.Fprintf(b, `<text x="%d" y="%.1f" font-size="10" text-anchor="end" fill="#666">%s</text>`,
			svgPadding-4, y+3, html.EscapeString(FormatValue(hi-(hi-lo)*float64(i)/4)))
	}
	for i, cat := range c.Categories {
		x := float64(svgPadding) + slot*(float64(i)+0.5)
		fmt.Fprintf(b, `<text x="%.1f" y="%d" font-size="11" text-anchor="middle" fill="#666">%s</text>`,
			x, svgHeight-svgPadding+16, html.EscapeString(cat))
	}

	yOf := func(v interface{}) (float64, bool) {
		n, ok := Number(v)
		if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return float64(svgPadding) + plotH*(hi-n)/(hi-lo), true
	}
	baseline, _ := yOf(0)

	switch c.Type {
	case KindBar:
		groups := len(c.Series)
		if groups == 0 {
			break
		}
		barW := slot * 0.8 / float64(groups)
		for si, s := range c.Series {
			for i, v := range s.Values {
				y, ok := yOf(v)
				if !ok {
					continue
				}
				x := float64(svgPadding) + slot*float64(i) + slot*0.1 + barW*float64(si)
				fmt.Fprintf(b, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" rx="4"><title>%s: %s</title></rect>`,
					x, math.Min(y, baseline), barW, math.Abs(baseline-y), s.Color,
					html.EscapeString(s.Name), html.EscapeString(FormatValue(v)))
			}
		}
	default:
		for _, s := range c.Series {
			var pts []string
			for i, v := range s.Values {
				y, ok := yOf(v)
				if !ok {
					continue
				}
				x := float64(svgPadding) + slot*(float64(i)+0.5)
				pts = append(pts, fmt.Sprintf("%.1f,%.1f", x, y))
				fmt.Fprintf(b, `<circle cx="%.1f" cy="%.1f" r="5" fill="%s"><title>%s: %s</title></circle>`,
					x, y, s.Color, html.EscapeString(s.Name), html.EscapeString(FormatValue(v)))
			}
			fmt.Fprintf(b, `<polyline points="%s" fill="none" stroke="%s" stroke-width="3"/>`, strings.Join(pts, " "), s.Color)
		}
	}
	b.WriteString(`</svg>`)
}

func writePieSVG(b *strings.Builder, c PieChart) {
	openSVG(b, "pie chart")
	total := 0.0
	for _, s := range c.Segments {
		if s.Value > 0 {
			total += s.Value
		}
	}
	cx, cy := float64(svgWidth)/2, float64(svgHeight)/2
	outer, inner := 120.0, 60.0
	if total == 0 {
		b.WriteString(`</svg>`)
		return
	}

	angle := -math.Pi / 2
	for _, s := range c.Segments {
		if s.Value <= 0 {
			continue
		}
		sweep := 2 * math.Pi * s.Value / total
		if sweep >= 2*math.Pi {
			sweep = 2*math.Pi - 1e-4
		}
		end := angle + sweep
		large := 0
		if sweep > math.Pi {
			large = 1
		}
		fmt.Fprintf(b, `<path d="M %.2f %.2f A %.0f %.0f 0 %d 1 %.2f %.2f L %.2f %.2f A %.0f %.0f 0 %d 0 %.2f %.2f Z" fill="%s"><title>%s: %s</title></path>`,
			cx+outer*math.Cos(angle), cy+outer*math.Sin(angle),
			outer, outer, large, cx+outer*math.Cos(end), cy+outer*math.Sin(end),
			cx+inner*math.Cos(end), cy+inner*math.Sin(end),
			inner, inner, large, cx+inner*math.Cos(angle), cy+inner*math.Sin(angle),
			s.Color, html.EscapeString(s.Label), html.EscapeString(FormatValue(s.Value)))
		angle = end
	}
	b.WriteString(`</svg>`)
}
