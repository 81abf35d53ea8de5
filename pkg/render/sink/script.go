package sink

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/scatterplot/pkg/interact"
)

const chartCSS = `
    .scatterplot { font-family: sans-serif; }
    .scatterplot .axis line, .scatterplot .axis path { stroke: #000; shape-rendering: crispEdges; }
    .scatterplot .axis text { font-size: 10px; fill: #000; }
    .scatterplot .axis-label { font-size: 14px; fill: #000; }
    .scatterplot .title { font-size: 16px; font-weight: bold; }
    .scatterplot .mark { fill: steelblue; fill-opacity: 0.7; stroke: #fff; stroke-width: 0.5; }`

const interactionCSS = `
    .scatterplot .mark { cursor: pointer; }
    .scatterplot .tooltip { pointer-events: none; opacity: 0; }
    .scatterplot .tooltip rect { fill: #fff; stroke: #999; rx: 4; }
    .scatterplot .tooltip text { font-size: 12px; fill: #000; }`

// Tooltip ownership: every mouseover takes the tooltip, a mouseout only hides
// it when the leaving mark still owns it.
const interactionJS = `
    var root = document.getElementById(cfg.id);
    if (!root) return;
    var owner = null;
    function lines(el) { return el.getAttribute('data-tooltip').split('\n'); }
    root.querySelectorAll('circle.mark').forEach(function (el) {
      var rest = cfg.rest > 0 ? cfg.rest : Number(el.getAttribute('r'));
      el.addEventListener('mouseover', function (evt) {
        el.style.transition = 'r ' + cfg.grow + 'ms';
        el.style.r = cfg.emphasized + 'px';
        owner = el.id;
        tip.show(lines(el), evt);
      });
      el.addEventListener('mouseout', function () {
        el.style.transition = 'r ' + cfg.shrink + 'ms';
        el.style.r = rest + 'px';
        if (owner !== el.id) return;
        owner = null;
        tip.hide();
      });
    });`

const svgTooltipJS = `
    var tipEl = document.getElementById(cfg.id + '-tooltip');
    var tip = {
      show: function (text, evt) {
        var svg = document.getElementById(cfg.id);
        var p = svg.createSVGPoint();
        p.x = evt.clientX; p.y = evt.clientY;
        p = p.matrixTransform(svg.getScreenCTM().inverse());
        var spans = tipEl.querySelectorAll('tspan');
        text.forEach(function (s, i) { if (spans[i]) spans[i].textContent = s; });
        var box = tipEl.querySelector('text').getBBox();
        var bg = tipEl.querySelector('rect');
        bg.setAttribute('width', box.width + 12);
        bg.setAttribute('height', box.height + 8);
        tipEl.setAttribute('transform', 'translate(' + (p.x + cfg.offsetX) + ',' + (p.y + cfg.offsetY) + ')');
        tipEl.style.transition = 'opacity ' + cfg.show + 'ms';
        tipEl.style.opacity = cfg.opacity;
      },
      hide: function () {
        tipEl.style.transition = 'opacity ' + cfg.hide + 'ms';
        tipEl.style.opacity = 0;
      }
    };`

const htmlTooltipJS = `
    var tipEl = document.querySelector('div.tooltip[data-for="' + cfg.id + '"]');
    var tip = {
      show: function (text, evt) {
        tipEl.textContent = '';
        text.forEach(function (s, i) {
          if (i > 0) tipEl.appendChild(document.createElement('br'));
          tipEl.appendChild(document.createTextNode(s));
        });
        tipEl.style.left = (evt.pageX + cfg.offsetX) + 'px';
        tipEl.style.top = (evt.pageY + cfg.offsetY) + 'px';
        tipEl.style.transition = 'opacity ' + cfg.show + 'ms';
        tipEl.style.opacity = cfg.opacity;
      },
      hide: function () {
        tipEl.style.transition = 'opacity ' + cfg.hide + 'ms';
        tipEl.style.opacity = 0;
      }
    };`

// scriptConfig is the interaction config as seen by the embedded script.
// Durations are milliseconds.
type scriptConfig struct {
	ID         string  `json:"id"`
	Rest       float64 `json:"rest"`
	Emphasized float64 `json:"emphasized"`
	Grow       int64   `json:"grow"`
	Shrink     int64   `json:"shrink"`
	Show       int64   `json:"show"`
	Hide       int64   `json:"hide"`
	Opacity    float64 `json:"opacity"`
	OffsetX    float64 `json:"offsetX"`
	OffsetY    float64 `json:"offsetY"`
}

func newScriptConfig(id string, c interact.Config) scriptConfig {
	return scriptConfig{
		ID:         id,
		Rest:       c.RestRadius,
		Emphasized: c.EmphasizedRadius,
		Grow:       c.Grow.Milliseconds(),
		Shrink:     c.Shrink.Milliseconds(),
		Show:       c.TooltipShow.Milliseconds(),
		Hide:       c.TooltipHide.Milliseconds(),
		Opacity:    c.TooltipOpacity,
		OffsetX:    c.Offset.X,
		OffsetY:    c.Offset.Y,
	}
}

func renderStyle(buf *bytes.Buffer, interactive bool) {
	css := chartCSS
	if interactive {
		css += interactionCSS
	}
	fmt.Fprintf(buf, "  <style>%s\n  </style>\n", css)
}

// renderScript writes the interaction script. tipJS selects where the
// tooltip lives: inside the SVG or in an HTML div.
func renderScript(buf *bytes.Buffer, id string, c interact.Config, tipJS string) error {
	cfg, err := json.Marshal(newScriptConfig(id, c))
	if err != nil {
		return fmt.Errorf("encode interaction config: %w", err)
	}
	fmt.Fprintf(buf, "  <script type=\"text/javascript\"><![CDATA[\n  (function (cfg) {%s%s\n  })(%s);\n  ]]></script>\n",
		tipJS, interactionJS, cfg)
	return nil
}
