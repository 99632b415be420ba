package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleDashboard(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(dashboardHTML))
}

const dashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Smart City Parking</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<style>
  body { font-family: 'Segoe UI', Arial, sans-serif; margin: 0; background: #f0f2f5; color: #333; }
  header { background: #1a5276; color: #fff; padding: 16px 24px; }
  header h1 { margin: 0; font-size: 22px; }
  main { max-width: 1100px; margin: 0 auto; padding: 24px; }
  .cards { display: grid; grid-template-columns: repeat(auto-fit, minmax(180px, 1fr)); gap: 16px; }
  .card { background: #fff; border-radius: 8px; padding: 16px; box-shadow: 0 1px 3px rgba(0,0,0,.1); }
  .card .value { font-size: 28px; font-weight: 600; }
  .card .label { color: #777; font-size: 13px; text-transform: uppercase; }
  section { margin-top: 24px; }
  h2 { font-size: 16px; color: #1a5276; }
  #map { height: 320px; border-radius: 8px; }
  .grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(64px, 1fr)); gap: 8px; }
  .spot { border-radius: 6px; padding: 10px 0; text-align: center; font-size: 12px; font-weight: 600; color: #fff; }
  .spot.free { background: #27ae60; }
  .spot.occupied { background: #c0392b; }
  .controls { display: flex; gap: 8px; flex-wrap: wrap; align-items: center; }
  button { background: #1a5276; color: #fff; border: 0; border-radius: 6px; padding: 10px 16px; cursor: pointer; }
  button:hover { background: #21618c; }
  input { padding: 10px; border: 1px solid #ccc; border-radius: 6px; }
  #prediction-result { margin-top: 12px; background: #fff; border-radius: 8px; padding: 12px; display: none; }
  .badge { display: inline-block; padding: 2px 8px; border-radius: 10px; font-size: 11px; background: #8e44ad; color: #fff; }
</style>
</head>
<body>
<header><h1>Smart City Parking Network</h1></header>
<main>
  <div class="cards">
    <div class="card"><div class="value" id="available">-</div><div class="label">Available spots</div></div>
    <div class="card"><div class="value" id="occupancy">-</div><div class="label">Occupancy</div></div>
    <div class="card"><div class="value" id="price">-</div><div class="label">Current price / h</div></div>
    <div class="card"><div class="value" id="total">-</div><div class="label">Total spots</div></div>
  </div>

  <section>
    <div class="controls">
      <button onclick="runUpdate()">Update detection</button>
      <input id="spot-number" placeholder="Spot number, e.g. DM01">
      <button onclick="predict()">Predict availability</button>
      <button onclick="findParking()">Find me a spot</button>
    </div>
    <div id="prediction-result"></div>
  </section>

  <section>
    <h2>City map</h2>
    <div id="map"></div>
  </section>

  <section>
    <h2>Spots</h2>
    <div class="grid" id="spots"></div>
  </section>
</main>

<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<script>
let map, markers = [];

async function refresh() {
  const res = await fetch('/api/status');
  if (!res.ok) return;
  const data = await res.json();
  document.getElementById('available').textContent = data.available_spots;
  document.getElementById('total').textContent = data.total_spots;
  document.getElementById('occupancy').textContent = (data.occupancy_rate * 100).toFixed(0) + '%';
  document.getElementById('price').textContent = '$' + data.current_price.toFixed(2);

  const grid = document.getElementById('spots');
  grid.innerHTML = '';
  for (const spot of data.spots) {
    const div = document.createElement('div');
    div.className = 'spot ' + (spot.is_occupied ? 'occupied' : 'free');
    div.textContent = spot.spot_number;
    grid.appendChild(div);
  }
}

async function drawMap() {
  const res = await fetch('/api/map');
  if (!res.ok) return;
  const data = await res.json();
  if (!map) {
    map = L.map('map').setView([data.center.latitude, data.center.longitude], data.zoom);
    L.tileLayer('https://tile.openstreetmap.org/{z}/{x}/{y}.png', {
      attribution: '&copy; OpenStreetMap contributors'
    }).addTo(map);
  }
  markers.forEach(m => m.remove());
  markers = [];
  for (const area of data.areas) {
    if (area.latitude == null || area.longitude == null) continue;
    const m = L.marker([area.latitude, area.longitude]).addTo(map);
    m.bindPopup('<b>' + area.name + '</b><br>' + area.available + ' / ' + area.total + ' free');
    markers.push(m);
  }
}

async function runUpdate() {
  await fetch('/api/update', { method: 'POST' });
  await refresh();
  await drawMap();
}

function renderPrediction(p) {
  const box = document.getElementById('prediction-result');
  box.style.display = 'block';
  const badge = p.ai_powered ? ' <span class="badge">AI ' + (p.model || '') + '</span>' : '';
  box.innerHTML = '<b>' + (p.spot_number || '') + '</b> ' +
    (p.predicted_available ? 'likely available' : 'likely occupied') +
    ' (confidence ' + (p.confidence * 100).toFixed(0) + '%)' + badge +
    (p.reasoning ? '<br><small>' + p.reasoning + '</small>' : '');
}

async function predict() {
  const number = document.getElementById('spot-number').value.trim();
  if (!number) return;
  const res = await fetch('/api/predict-by-number/' + encodeURIComponent(number));
  const data = await res.json();
  if (!res.ok) {
    const box = document.getElementById('prediction-result');
    box.style.display = 'block';
    box.textContent = data.error || 'prediction failed';
    return;
  }
  renderPrediction(data);
}

async function findParking() {
  const res = await fetch('/api/find-parking');
  if (!res.ok) return;
  const data = await res.json();
  const box = document.getElementById('prediction-result');
  box.style.display = 'block';
  if (!data.recommended_spots || data.recommended_spots.length === 0) {
    box.textContent = 'No available spots right now.';
    return;
  }
  box.innerHTML = data.recommended_spots.map(r =>
    '<div><b>' + r.spot.spot_number + '</b> score ' + r.score.toFixed(1) + '</div>'
  ).join('');
}

refresh();
drawMap();
setInterval(() => { refresh(); drawMap(); }, 30000);
</script>
</body>
</html>
`
