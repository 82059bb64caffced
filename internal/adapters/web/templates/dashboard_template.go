package templates

// DashboardHTML renders the inventory page. Column headers post the sort
// selection back to the server; each row expands to its affected devices.
const DashboardHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>{{.Title}}</title>
    <style>
        :root {
            --bg: rgb(242, 245, 249);
            --text-primary: #020617;
            --text-secondary: #475569;
            --border: #cbd5e1;
            --radius: 6px;
        }

        body {
            font-family: 'Inter', -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
            background: var(--bg);
            color: var(--text-primary);
            margin: 0;
            padding: 48px 24px;
        }

        main { max-width: 1100px; margin: 0 auto; display: flex; flex-direction: column; gap: 32px; }
        .eyebrow { font-size: 12px; font-weight: 600; text-transform: uppercase; letter-spacing: 0.3em; color: var(--text-secondary); margin: 0; }
        header .row { display: flex; justify-content: space-between; align-items: flex-end; }
        h1 { font-size: 32px; margin: 12px 0 0; }

        .cards { display: grid; grid-template-columns: 1fr 1fr; gap: 16px; }
        .card { background: #fff; border: 1px solid var(--border); border-radius: var(--radius); }
        .card.stat { padding: 20px; }
        .stat .label { font-size: 12px; font-weight: 600; text-transform: uppercase; letter-spacing: 0.2em; color: var(--text-secondary); margin: 0; }
        .stat .value { font-size: 30px; font-weight: 600; margin: 12px 0 0; }
        .stat .hint { font-size: 14px; color: var(--text-secondary); margin: 8px 0 0; }

        .card-head { display: flex; justify-content: space-between; align-items: center; padding: 16px 24px; border-bottom: 1px solid var(--border); }
        .card-head h2 { margin: 0; font-size: 18px; }
        .card-head p { margin: 4px 0 0; font-size: 14px; color: var(--text-secondary); }

        .pill { display: inline-block; padding: 2px 10px; border-radius: 999px; font-size: 12px; font-weight: 600; background: #e2e8f0; color: #1e293b; }
        .tone-critical { background: #fee2e2; color: #b91c1c; }
        .tone-high { background: #ffedd5; color: #c2410c; }
        .tone-medium { background: #fef3c7; color: #b45309; }
        .tone-low { background: #d1fae5; color: #047857; }
        .tone-unknown { background: #f1f5f9; color: #475569; }

        .error { padding: 24px; }
        .error .title { color: #dc2626; font-weight: 600; font-size: 14px; margin: 0; }
        .error .body { white-space: pre-line; font-size: 14px; color: var(--text-secondary); margin: 8px 0 0; }
        .empty { padding: 40px 24px; font-size: 14px; color: var(--text-secondary); }

        table { width: 100%; border-collapse: collapse; font-size: 14px; }
        thead { background: #f1f5f9; }
        th { text-align: left; padding: 14px 24px; font-size: 12px; text-transform: uppercase; letter-spacing: 0.2em; color: var(--text-secondary); }
        th.right, td.right { text-align: right; }
        th button { background: none; border: 0; font: inherit; color: inherit; letter-spacing: inherit; text-transform: inherit; cursor: pointer; padding: 4px 8px; }
        th button.active { background: #fff; color: #1e293b; border-radius: 2px; }
        td { padding: 14px 24px; border-top: 1px solid var(--border); vertical-align: top; }
        details summary { cursor: pointer; font-weight: 600; }
        .machines { margin-top: 12px; padding: 16px; border: 1px dashed var(--border); background: #f1f5f9; border-radius: var(--radius); display: flex; flex-wrap: wrap; gap: 8px; }
        .machines .pill { background: #fff; border: 1px solid var(--border); }
    </style>
</head>
<body>
<main>
    <header>
        <p class="eyebrow">Vulnerability Overview</p>
        <div class="row">
            <h1>{{.Title}}</h1>
            <form method="post" action="/refresh"><button type="submit">Refresh data</button></form>
        </div>
    </header>

    <section class="cards">
        <div class="card stat">
            <p class="label">Total CVEs</p>
            <p class="value">{{.Summary.TotalCVEs}}</p>
            <p class="hint">Sorted by {{.Sort.Key.Label}} ({{.Sort.Direction}}).</p>
        </div>
        <div class="card stat">
            <p class="label">Devices Scanned</p>
            <p class="value">{{.Summary.DevicesScanned}}</p>
            <p class="hint">Unique machines in scope.</p>
        </div>
    </section>

    <section class="card">
        <div class="card-head">
            <div>
                <h2>CVE inventory</h2>
                <p>Expand a row to reveal affected devices.</p>
            </div>
            {{if .Summary.Loading}}<span class="pill">Loading</span>{{else}}<span class="pill">{{len .Rows}} entries</span>{{end}}
        </div>

        {{if .Summary.Error}}
        <div class="error">
            <p class="title">Data error</p>
            <p class="body">{{.Summary.Error}}</p>
        </div>
        {{end}}

        {{if and .Summary.Loading (not .Rows)}}
        <div class="empty">Loading CVE data...</div>
        {{else if not .Rows}}
        <div class="empty">No CVE data available.</div>
        {{else}}
        <form method="post" action="/sort">
        <table>
            <thead>
                <tr>
                    {{range .Columns}}
                    <th{{if .Right}} class="right"{{end}} aria-sort="{{.AriaSort}}">
                        <button type="submit" name="key" value="{{.Key}}"{{if .Active}} class="active"{{end}}>{{.Label}} {{.Arrow}}</button>
                    </th>
                    {{if eq .Key "score"}}<th>Description</th>{{end}}
                    {{end}}
                </tr>
            </thead>
            <tbody>
                {{range .Rows}}
                <tr>
                    <td>
                        <details>
                            <summary>{{.CVEID}}</summary>
                            <div class="machines">
                                {{range .AffectedMachines}}<span class="pill">{{.}}</span>{{end}}
                            </div>
                        </details>
                    </td>
                    <td><span class="pill {{severityClass .CVESeverity}}">{{severityLabel .CVESeverity}}</span></td>
                    <td>{{formatScore .CVEScore}}</td>
                    <td>{{.CVEDescription}}</td>
                    <td class="right"><strong>{{.AffectedCount}}</strong></td>
                </tr>
                {{end}}
            </tbody>
        </table>
        </form>
        {{end}}
    </section>
</main>
<script>
    (function () {
        var proto = location.protocol === "https:" ? "wss://" : "ws://";
        var ws = new WebSocket(proto + location.host + "/ws");
        var first = true;
        ws.onmessage = function (ev) {
            var msg = JSON.parse(ev.data);
            if (msg.type !== "inventory") return;
            if (first) { first = false; return; }
            location.reload();
        };
    })();
</script>
</body>
</html>
`
