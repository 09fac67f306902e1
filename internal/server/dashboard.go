package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const dashboardHTML = `<!DOCTYPE html>
<html lang="zh-CN">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>PriceLens 价格透镜</title>
    <meta name="description" content="个性化定价模拟器：看见千人千价">
    <link rel="icon" href="data:image/svg+xml,<svg xmlns='http://www.w3.org/2000/svg' viewBox='0 0 100 100'><text y='.9em' font-size='90'>¥</text></svg>">
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }

        :root {
            --bg: #09090b;
            --bg-subtle: #18181b;
            --border: #27272a;
            --text: #fafafa;
            --text-secondary: #a1a1aa;
            --text-tertiary: #52525b;
            --accent: #f59e0b;
            --accent-dim: rgba(245, 158, 11, 0.1);
            --red: #ef4444;
            --green: #22c55e;
            --blue: #3b82f6;
        }

        body {
            font-family: -apple-system, 'PingFang SC', 'Microsoft YaHei', sans-serif;
            background: var(--bg);
            color: var(--text);
            min-height: 100vh;
            font-size: 14px;
            line-height: 1.5;
            -webkit-font-smoothing: antialiased;
        }

        .mono { font-family: ui-monospace, 'SF Mono', Consolas, monospace; }

        .container {
            max-width: 1200px;
            margin: 0 auto;
            padding: 0 24px;
        }

        header {
            border-bottom: 1px solid var(--border);
            padding: 16px 0;
            position: sticky;
            top: 0;
            background: var(--bg);
            z-index: 100;
        }

        .header-inner {
            display: flex;
            justify-content: space-between;
            align-items: center;
        }

        .logo {
            font-weight: 600;
            font-size: 16px;
        }

        .logo span { color: var(--accent); }

        .reveal-toggle {
            display: flex;
            align-items: center;
            gap: 8px;
            color: var(--text-secondary);
            font-size: 13px;
            cursor: pointer;
            user-select: none;
        }

        .reveal-toggle input { accent-color: var(--accent); }

        .grid {
            display: grid;
            grid-template-columns: 340px 1fr;
            gap: 24px;
            padding: 24px 0;
        }

        @media (max-width: 900px) {
            .grid { grid-template-columns: 1fr; }
        }

        .panel {
            background: var(--bg-subtle);
            border: 1px solid var(--border);
            border-radius: 8px;
            padding: 20px;
        }

        .panel h2 {
            font-size: 13px;
            font-weight: 600;
            color: var(--text-secondary);
            text-transform: uppercase;
            letter-spacing: 0.05em;
            margin-bottom: 16px;
        }

        .field { margin-bottom: 12px; }

        .field label {
            display: block;
            font-size: 12px;
            color: var(--text-tertiary);
            margin-bottom: 4px;
        }

        .field select, .field input[type=number] {
            width: 100%;
            background: var(--bg);
            border: 1px solid var(--border);
            border-radius: 6px;
            color: var(--text);
            padding: 8px 10px;
            font-size: 13px;
        }

        .field-check {
            display: flex;
            align-items: center;
            gap: 8px;
            font-size: 13px;
            color: var(--text-secondary);
            margin-bottom: 8px;
        }

        .btn {
            width: 100%;
            background: var(--accent);
            color: #09090b;
            border: none;
            border-radius: 6px;
            padding: 10px;
            font-size: 14px;
            font-weight: 600;
            cursor: pointer;
            margin-top: 8px;
        }

        .btn:hover { opacity: 0.9; }

        .btn-secondary {
            background: var(--bg);
            color: var(--text);
            border: 1px solid var(--border);
        }

        .product-card {
            display: flex;
            justify-content: space-between;
            align-items: baseline;
            padding: 16px;
            background: var(--bg);
            border: 1px solid var(--border);
            border-radius: 8px;
            margin-bottom: 16px;
        }

        .product-name { font-size: 15px; font-weight: 500; }
        .product-category { font-size: 12px; color: var(--text-tertiary); }

        .price-display {
            text-align: center;
            padding: 32px 0;
        }

        .price-final {
            font-size: 48px;
            font-weight: 600;
            color: var(--accent);
        }

        .price-base {
            font-size: 14px;
            color: var(--text-tertiary);
            text-decoration: line-through;
            margin-top: 4px;
        }

        .price-delta { font-size: 14px; margin-top: 4px; }
        .price-delta.up { color: var(--red); }
        .price-delta.down { color: var(--green); }

        .adjustments { margin-top: 16px; }

        .adj-row {
            display: flex;
            justify-content: space-between;
            padding: 8px 0;
            border-bottom: 1px solid var(--border);
            font-size: 13px;
        }

        .adj-label { color: var(--text-secondary); }
        .adj-delta.up { color: var(--red); }
        .adj-delta.down { color: var(--green); }
        .adj-delta.flat { color: var(--text-tertiary); }

        .hidden { display: none; }

        .blur-note {
            text-align: center;
            font-size: 12px;
            color: var(--text-tertiary);
            padding: 12px 0;
        }

        .histogram { margin-top: 16px; }

        .hist-row {
            display: flex;
            align-items: center;
            gap: 8px;
            margin-bottom: 4px;
            font-size: 11px;
        }

        .hist-range { width: 140px; color: var(--text-tertiary); text-align: right; }

        .hist-bar {
            height: 14px;
            background: var(--blue);
            border-radius: 2px;
            min-width: 2px;
        }

        .hist-count { color: var(--text-secondary); }

        .stats-row {
            display: flex;
            justify-content: space-between;
            font-size: 13px;
            padding: 4px 0;
            color: var(--text-secondary);
        }

        .stats-row .mono { color: var(--text); }

        .feed { max-height: 280px; overflow-y: auto; }

        .feed-item {
            display: flex;
            justify-content: space-between;
            padding: 6px 0;
            border-bottom: 1px solid var(--border);
            font-size: 12px;
            color: var(--text-secondary);
        }

        .empty {
            color: var(--text-tertiary);
            text-align: center;
            padding: 24px 0;
            font-size: 13px;
        }
    </style>
</head>
<body>
    <header>
        <div class="container header-inner">
            <div class="logo">PriceLens <span>价格透镜</span></div>
            <label class="reveal-toggle">
                <input type="checkbox" id="reveal-check">
                <span>揭示模式（显示定价规则）</span>
            </label>
        </div>
    </header>

    <div class="container grid">
        <div>
            <div class="panel">
                <h2>买家画像</h2>
                <div class="field">
                    <label>商品</label>
                    <select id="product"></select>
                </div>
                <div class="field">
                    <label>定价策略</label>
                    <select id="strategy">
                        <option value="interactive">interactive（逐项加减）</option>
                        <option value="multiplicative">multiplicative（连乘系数）</option>
                    </select>
                </div>
                <div class="field">
                    <label>用户类型</label>
                    <select id="userType">
                        <option>新用户（首次使用）</option>
                        <option selected>普通用户（偶尔使用）</option>
                        <option>忠诚用户（高频使用）</option>
                    </select>
                </div>
                <div class="field">
                    <label>月消费金额</label>
                    <select id="spendingRange">
                        <option>100元以下</option>
                        <option selected>100-500元</option>
                        <option>500-1000元</option>
                        <option>1000-3000元</option>
                        <option>3000元以上</option>
                    </select>
                </div>
                <div class="field">
                    <label>设备</label>
                    <select id="device">
                        <option selected>Android手机</option>
                        <option>iPhone (iOS)</option>
                    </select>
                </div>
                <div class="field">
                    <label>活跃度</label>
                    <select id="activity">
                        <option>很少使用</option>
                        <option selected>偶尔使用</option>
                        <option>经常使用</option>
                    </select>
                </div>
                <div class="field">
                    <label>购买频率</label>
                    <select id="frequency">
                        <option>第一次看</option>
                        <option selected>看过几次</option>
                        <option>经常查看</option>
                    </select>
                </div>
                <div class="field">
                    <label>会员等级</label>
                    <select id="vipLevel">
                        <option selected>非会员</option>
                        <option>普通会员</option>
                        <option>高级会员</option>
                    </select>
                </div>
                <div class="field">
                    <label>退货率</label>
                    <select id="returnRate">
                        <option>很少退货</option>
                        <option selected>偶尔退货</option>
                        <option>经常退货</option>
                    </select>
                </div>
                <div class="field">
                    <label>购买时段</label>
                    <select id="period">
                        <option selected>平时</option>
                        <option>大促期间</option>
                    </select>
                </div>
                <label class="field-check">
                    <input type="checkbox" id="hasCoupon"> 持有优惠券
                </label>
                <label class="field-check">
                    <input type="checkbox" id="hasSimilarInCart"> 购物车有同类商品
                </label>
                <button class="btn" id="quote-btn">计算我的价格</button>
            </div>
        </div>

        <div>
            <div class="panel">
                <h2>你看到的价格</h2>
                <div class="product-card">
                    <div>
                        <div class="product-name" id="product-name">--</div>
                        <div class="product-category" id="product-category"></div>
                    </div>
                </div>
                <div class="price-display">
                    <div class="price-final mono" id="final-price">--</div>
                    <div class="price-base mono hidden" id="base-price"></div>
                    <div class="price-delta mono hidden" id="price-delta"></div>
                </div>
                <div class="blur-note" id="blur-note">开启揭示模式，查看这个价格是如何算出来的</div>
                <div class="adjustments hidden" id="adjustments"></div>
            </div>

            <div class="panel" style="margin-top: 24px">
                <h2>千人千价：同一商品的人群分布</h2>
                <div class="field" style="max-width: 200px">
                    <label>人数</label>
                    <input type="number" id="pop-n" value="50" min="1" max="1000">
                </div>
                <button class="btn btn-secondary" id="pop-btn" style="max-width: 200px">生成人群</button>
                <div id="pop-stats"></div>
                <div class="histogram" id="histogram"></div>
            </div>

            <div class="panel" style="margin-top: 24px">
                <h2>实时报价</h2>
                <div class="feed" id="feed">
                    <div class="empty">暂无报价</div>
                </div>
            </div>
        </div>
    </div>

    <script>
        let products = [];
        let reveal = false;
        let lastQuote = null;

        async function safeFetch(url, opts) {
            try {
                const res = await fetch(url, opts);
                if (!res.ok) return null;
                return await res.json();
            } catch (e) {
                return null;
            }
        }

        function fmt(v) { return '¥' + v.toFixed(2); }

        function selectedProduct() {
            const sku = document.getElementById('product').value;
            return products.find(p => p.sku === sku);
        }

        function collectLabels() {
            return {
                userType: document.getElementById('userType').value,
                spendingRange: document.getElementById('spendingRange').value,
                device: document.getElementById('device').value,
                activity: document.getElementById('activity').value,
                frequency: document.getElementById('frequency').value,
                vipLevel: document.getElementById('vipLevel').value,
                returnRate: document.getElementById('returnRate').value,
                period: document.getElementById('period').value,
                hasCoupon: document.getElementById('hasCoupon').checked,
                hasSimilarInCart: document.getElementById('hasSimilarInCart').checked
            };
        }

        function renderQuote(q) {
            lastQuote = q;
            document.getElementById('final-price').textContent = fmt(q.finalPrice);

            const base = document.getElementById('base-price');
            const delta = document.getElementById('price-delta');
            const adjustments = document.getElementById('adjustments');
            const note = document.getElementById('blur-note');

            if (!reveal) {
                base.classList.add('hidden');
                delta.classList.add('hidden');
                adjustments.classList.add('hidden');
                note.classList.remove('hidden');
                return;
            }

            note.classList.add('hidden');
            base.classList.remove('hidden');
            base.textContent = '原价 ' + fmt(q.basePrice);

            const pct = (q.finalPrice - q.basePrice) / q.basePrice * 100;
            delta.classList.remove('hidden');
            delta.className = 'price-delta mono ' + (pct > 0 ? 'up' : 'down');
            delta.textContent = (pct >= 0 ? '+' : '') + pct.toFixed(1) + '% vs 原价';

            adjustments.classList.remove('hidden');
            adjustments.innerHTML = (q.adjustments || []).map(a => {
                const cls = a.delta > 0 ? 'up' : (a.delta < 0 ? 'down' : 'flat');
                const val = (a.delta >= 0 ? '+' : '') + a.delta.toFixed(2);
                return '<div class="adj-row"><span class="adj-label">' + a.label +
                    '</span><span class="adj-delta mono ' + cls + '">' + val + '</span></div>';
            }).join('');
        }

        async function computeQuote() {
            const p = selectedProduct();
            if (!p) return;

            const q = await safeFetch('/v1/quotes', {
                method: 'POST',
                headers: { 'Content-Type': 'application/json' },
                body: JSON.stringify({
                    sku: p.sku,
                    strategy: document.getElementById('strategy').value,
                    labels: collectLabels()
                })
            });
            if (q) renderQuote(q);
        }

        async function generatePopulation() {
            const p = selectedProduct();
            if (!p) return;

            const n = document.getElementById('pop-n').value;
            const strategy = document.getElementById('strategy').value;
            const res = await safeFetch('/v1/population?sku=' + p.sku + '&n=' + n + '&strategy=' + strategy);
            if (!res) return;

            const s = res.summary;
            document.getElementById('pop-stats').innerHTML =
                '<div class="stats-row"><span>平均价</span><span class="mono">' + fmt(s.mean) + '</span></div>' +
                '<div class="stats-row"><span>中位数</span><span class="mono">' + fmt(s.median) + '</span></div>' +
                '<div class="stats-row"><span>最低 / 最高</span><span class="mono">' + fmt(s.min) + ' / ' + fmt(s.max) + '</span></div>' +
                '<div class="stats-row"><span>价差</span><span class="mono">' + fmt(s.spread) + '</span></div>';

            const maxCount = Math.max(...s.histogram.map(b => b.count), 1);
            document.getElementById('histogram').innerHTML = s.histogram.map(b =>
                '<div class="hist-row"><span class="hist-range mono">' + fmt(b.low) + '-' + fmt(b.high) +
                '</span><div class="hist-bar" style="width:' + (b.count / maxCount * 100) + '%"></div>' +
                '<span class="hist-count mono">' + b.count + '</span></div>'
            ).join('');
        }

        function onProductChange() {
            const p = selectedProduct();
            if (!p) return;
            document.getElementById('product-name').textContent = p.name;
            document.getElementById('product-category').textContent = p.category;
            document.getElementById('final-price').textContent = fmt(p.basePrice);
        }

        async function loadProducts() {
            const res = await safeFetch('/v1/products');
            if (!res?.products) return;
            products = res.products;
            document.getElementById('product').innerHTML = products.map(p =>
                '<option value="' + p.sku + '">' + p.name + '</option>'
            ).join('');
            onProductChange();
        }

        async function loadSession() {
            const s = await safeFetch('/v1/session');
            if (s) {
                reveal = !!s.reveal;
                document.getElementById('reveal-check').checked = reveal;
            }
        }

        async function setReveal(on) {
            reveal = on;
            await safeFetch('/v1/session/reveal', {
                method: 'POST',
                headers: { 'Content-Type': 'application/json' },
                body: JSON.stringify({ reveal: on })
            });
            if (lastQuote) renderQuote(lastQuote);
        }

        function connectFeed() {
            const proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
            const ws = new WebSocket(proto + location.host + '/ws');
            ws.onmessage = (ev) => {
                let msg;
                try { msg = JSON.parse(ev.data); } catch (e) { return; }
                if (msg.type !== 'quote' || !msg.data) return;
                const q = msg.data;
                const feed = document.getElementById('feed');
                const empty = feed.querySelector('.empty');
                if (empty) empty.remove();
                const row = document.createElement('div');
                row.className = 'feed-item';
                row.innerHTML = '<span>' + q.sku + ' · ' + q.strategy +
                    '</span><span class="mono">' + fmt(q.finalPrice) + '</span>';
                feed.prepend(row);
                while (feed.children.length > 30) feed.lastChild.remove();
            };
            // Reconnect with a flat delay
            ws.onclose = () => setTimeout(connectFeed, 3000);
        }

        document.getElementById('quote-btn').addEventListener('click', computeQuote);
        document.getElementById('pop-btn').addEventListener('click', generatePopulation);
        document.getElementById('product').addEventListener('change', onProductChange);
        document.getElementById('reveal-check').addEventListener('change', (e) => setReveal(e.target.checked));

        loadProducts();
        loadSession();
        connectFeed();
    </script>
</body>
</html>`

// dashboardHandler serves the simulator page
func dashboardHandler(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, dashboardHTML)
}
