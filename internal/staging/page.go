package staging

import "context"

// Page is the live document of a browser tab.
type Page interface {
	// SetContent replaces the document with html and waits until it is laid out.
	SetContent(ctx context.Context, html string) error

	// Eval calls the JavaScript function expression fn with args and decodes
	// its JSON result into out. out may be nil when the result is not needed.
	Eval(ctx context.Context, fn string, out any, args ...any) error
}

// Class names used in the staged document.
const (
	OverlayClass   = "html2pdf__overlay"
	ContainerClass = "html2pdf__container"
	PageBreakClass = "html2pdf__page-break"
)

// Attributes carrying the scroll position of a scrollable source element.
// Parsed markup has no live scroll state, so callers record it here.
const (
	ScrollTopAttr  = "data-html2pdf-scroll-top"
	ScrollLeftAttr = "data-html2pdf-scroll-left"
)

// Scripts evaluated against the staged document.
const (
	scriptCountPageBreaks = `() => document.querySelectorAll('.` + ContainerClass + ` .` + PageBreakClass + `').length`

	scriptPreparePageBreak = `(i) => {
	const c = document.querySelector('.` + ContainerClass + `');
	const el = c.querySelectorAll('.` + PageBreakClass + `')[i];
	el.style.display = 'block';
	return el.getBoundingClientRect().top - c.getBoundingClientRect().top;
}`

	scriptSetPageBreakHeight = `(i, px) => {
	const el = document.querySelectorAll('.` + ContainerClass + ` .` + PageBreakClass + `')[i];
	el.style.height = px + 'px';
	return true;
}`

	scriptRestoreScroll = `() => {
	const els = document.querySelectorAll('[` + ScrollTopAttr + `], [` + ScrollLeftAttr + `]');
	els.forEach((el) => {
		el.scrollTop = Number(el.getAttribute('` + ScrollTopAttr + `')) || 0;
		el.scrollLeft = Number(el.getAttribute('` + ScrollLeftAttr + `')) || 0;
	});
	return els.length;
}`

	scriptContainerBounds = `() => {
	const r = document.querySelector('.` + ContainerClass + `').getBoundingClientRect();
	return {left: r.left + window.scrollX, top: r.top + window.scrollY, width: r.width, height: r.height};
}`

	scriptDetach = `() => {
	const o = document.querySelector('.` + OverlayClass + `');
	if (o) { o.remove(); }
	return true;
}`
)
