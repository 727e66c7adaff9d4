package audit

import "github.com/seoaudit/pipeline/models"

// Checks 71-80: security, grounded on audit_engine.py's
// _run_security_checks. Real TLS certificate inspection (73, 74) and
// rendered-layout accessibility metrics (78-80) aren't modeled by this
// crawler's fetch/extract pipeline and degrade to unavailable().
func init() {
	register(71, checkNotHTTPS)
	register(72, checkMixedContent)
	register(73, checkMissingSSLCertificate)
	register(74, checkExpiredSSLCertificate)
	register(75, checkMissingHSTS)
	register(76, checkMissingLanguageDeclaration)
	register(77, checkMissingInvalidHreflang)
	register(78, checkLowColorContrast)
	register(79, checkMissingFormLabels)
	register(80, checkMissingSkipLinks)
}

func checkNotHTTPS(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		if !isHTTPS(p.URL) {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("are served over plain HTTP", len(urls)))
}

func checkMixedContent(ctx *Context) models.CheckResult {
	return unavailable("sub-resource URL scheme inspection isn't performed by this crawler")
}

func checkMissingSSLCertificate(ctx *Context) models.CheckResult {
	return unavailable("TLS certificate chain inspection isn't performed by this crawler")
}

func checkExpiredSSLCertificate(ctx *Context) models.CheckResult {
	return unavailable("TLS certificate expiry inspection isn't performed by this crawler")
}

func checkMissingHSTS(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		if !isHTTPS(p.URL) {
			continue
		}
		if _, ok := p.ResponseHeaders["Strict-Transport-Security"]; !ok {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("serve HTTPS without a Strict-Transport-Security header", len(urls)))
}

func checkMissingLanguageDeclaration(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		if p.Lang == "" {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("have no lang attribute on <html>", len(urls)))
}

func checkMissingInvalidHreflang(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		for lang := range p.Hreflang {
			if !validHreflang(lang) {
				urls = append(urls, p.URL)
				break
			}
		}
	}
	return affected(urls, countMsg("declare a malformed hreflang value", len(urls)))
}

func validHreflang(lang string) bool {
	lang = normalizeHreflang(lang)
	if lang == "x-default" {
		return true
	}
	if len(lang) == 2 {
		return true
	}
	if len(lang) == 5 && lang[2] == '-' {
		return true
	}
	return false
}

func normalizeHreflang(lang string) string {
	out := make([]byte, len(lang))
	for i := 0; i < len(lang); i++ {
		c := lang[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}

func checkLowColorContrast(ctx *Context) models.CheckResult {
	return unavailable("rendered color-contrast measurement isn't performed by this crawler")
}

func checkMissingFormLabels(ctx *Context) models.CheckResult {
	return unavailable("form/label association isn't extracted by this crawler")
}

func checkMissingSkipLinks(ctx *Context) models.CheckResult {
	return unavailable("skip-link detection isn't extracted by this crawler")
}
